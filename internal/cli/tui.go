package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	sponsoredStyle    = lipgloss.NewStyle().Foreground(colorSponsored)
)

// =============================================================================
// treeModel - Interactive render tree browser
// =============================================================================

// treeEntry is one component of the flattened tree.
type treeEntry struct {
	row       int
	component layout.RenderedComponent
}

// treeModel is the bubbletea model for browsing a render tree: a component
// list on top and the selected component's items below.
type treeModel struct {
	entries []treeEntry
	cursor  int
	offset  int
	height  int
}

func newTreeModel(tree layout.RenderTree) treeModel {
	var entries []treeEntry
	for i, row := range tree.Rows {
		for _, rc := range row.Components {
			entries = append(entries, treeEntry{row: i, component: rc})
		}
	}
	return treeModel{entries: entries, height: 10}
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height/2-4, 3)
	}
	return m, nil
}

func (m treeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Render Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.entries))
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%srow %-2d %-20s %s", cursor, e.row, e.component.Type,
			componentStatus(e.component))
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case e.component.Placeholder:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 48)))
	b.WriteString("\n")
	if len(m.entries) > 0 {
		b.WriteString(componentDetail(m.entries[m.cursor].component))
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))
	return b.String()
}

// componentDetail lists the items a component shows.
func componentDetail(rc layout.RenderedComponent) string {
	if rc.Placeholder {
		return StyleWarning.Render("  waiting for data") + "\n"
	}
	if rc.Data == nil {
		return listDimStyle.Render("  static component") + "\n"
	}

	var b strings.Builder
	for _, s := range rc.Data.Sections {
		fmt.Fprintf(&b, "  %s\n", StyleHighlight.Render("§ "+s.SectionKey))
		writeItems(&b, s.Data, "    ")
	}
	writeItems(&b, rc.Data.Recommendations, "  ")
	writeItems(&b, rc.Data.Spocs, "  ")
	for _, bn := range rc.Data.Banners {
		fmt.Fprintf(&b, "  %s row %d  %s\n", sponsoredStyle.Render(bn.Format), bn.Row, itemLabel(bn.Item))
	}
	return b.String()
}

func writeItems(b *strings.Builder, items []content.Item, indent string) {
	for _, it := range items {
		pos := "  "
		if p, ok := it.Position(); ok {
			pos = fmt.Sprintf("%2d", p)
		}
		label := itemLabel(it)
		if it.IsSponsored() {
			label = sponsoredStyle.Render("$ " + label)
		}
		fmt.Fprintf(b, "%s%s  %s\n", indent, listDimStyle.Render(pos), label)
	}
}

func itemLabel(it content.Item) string {
	if it.Title != "" {
		return it.Title
	}
	return it.URL
}
