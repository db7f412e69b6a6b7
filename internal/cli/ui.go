package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/contentstack/pkg/layout"
)

// stdout receives all human-facing CLI output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// ===== Palette =====

// Colors are named after what they mark on a resolved page, not their hue.
var (
	colorAccent    = lipgloss.Color("36")  // titles, selection
	colorReady     = lipgloss.Color("35")  // resolved components, success
	colorLoading   = lipgloss.Color("214") // placeholders, warnings
	colorSponsored = lipgloss.Color("220") // spocs and banners
	colorLink      = lipgloss.Color("75")
	colorText      = lipgloss.Color("255")
	colorLabel     = lipgloss.Color("245")
	colorMuted     = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorLoading)

	styleOK      = lipgloss.NewStyle().Foreground(colorReady)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel)
	styleKey     = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

const (
	markOK      = "✓"
	markWarning = "!"
	markInfo    = "›"
	markFile    = "→"
)

// ===== Status lines =====

func printLine(mark lipgloss.Style, icon, msg string) {
	fmt.Fprintln(stdout, mark.Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printLine(styleOK, markOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(StyleWarning, markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(styleLabel, markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(markFile)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// ===== Tree summary =====

// statsLine summarizes a resolved tree, e.g.
// "4 rows · 9 components · 12 stories · 3 sponsored · 1 loading · cached".
func statsLine(st layout.Stats, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d rows", st.Rows),
		fmt.Sprintf("%d components", st.Components),
	}
	if st.Recommendations > 0 {
		parts = append(parts, fmt.Sprintf("%d stories", st.Recommendations))
	}
	if st.Sections > 0 {
		parts = append(parts, fmt.Sprintf("%d sections", st.Sections))
	}
	if ads := st.Spocs + st.Billboards + st.Leaderboards; ads > 0 {
		parts = append(parts, fmt.Sprintf("%d sponsored", ads))
	}
	if st.Placeholders > 0 {
		parts = append(parts, fmt.Sprintf("%d loading", st.Placeholders))
	}
	if cached {
		parts = append(parts, "cached")
	} else {
		parts = append(parts, "fresh")
	}
	return strings.Join(parts, " · ")
}

func printStats(st layout.Stats, cached bool) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(statsLine(st, cached)))
}
