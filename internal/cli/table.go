package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/contentstack/pkg/layout"
)

const (
	statusLoading = "loading"
	statusReady   = "ready"
	statusStatic  = "static"
)

// componentStatus classifies a rendered component for display.
func componentStatus(rc layout.RenderedComponent) string {
	switch {
	case rc.Placeholder:
		return statusLoading
	case rc.Data == nil:
		return statusStatic
	}
	return statusReady
}

// componentRow returns the table cells of one rendered component.
func componentRow(row int, width int, rc layout.RenderedComponent) []string {
	var recs, sponsored, sections, banners int
	if rc.Data != nil && !rc.Placeholder {
		for _, it := range rc.Data.Recommendations {
			if it.IsSponsored() {
				sponsored++
			} else {
				recs++
			}
		}
		sponsored += len(rc.Data.Spocs)
		sections = len(rc.Data.Sections)
		banners = len(rc.Data.Banners)
	}
	return []string{
		strconv.Itoa(row),
		strconv.Itoa(width),
		rc.Type,
		componentStatus(rc),
		countCell(recs),
		countCell(sponsored),
		countCell(sections),
		countCell(banners),
	}
}

func countCell(n int) string {
	if n == 0 {
		return "—"
	}
	return strconv.Itoa(n)
}

// renderTable renders one line per component of tree.
func renderTable(tree layout.RenderTree) string {
	var rows [][]string
	for i, row := range tree.Rows {
		for _, rc := range row.Components {
			rows = append(rows, componentRow(i, row.Width, rc))
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Row", "Width", "Component", "Status", "Stories", "Sponsored", "Sections", "Banners").
		Rows(rows...).
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col != 3 || r >= len(rows) {
				return base
			}
			switch rows[r][3] {
			case statusLoading:
				return base.Foreground(colorLoading)
			case statusReady:
				return base.Foreground(colorReady)
			}
			return base.Foreground(colorMuted)
		})
	return t.Render()
}
