package render

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Column describes one column of a static table.
type Column struct {
	Title string
	Width int
}

// Table renders rows as a styled table when color is set, or as tab
// separated lines otherwise.
func Table(columns []Column, rows [][]string, color bool) string {
	if !color {
		var b strings.Builder
		titles := make([]string, len(columns))
		for i, c := range columns {
			titles[i] = strings.ToUpper(c.Title)
		}
		b.WriteString(strings.Join(titles, "\t"))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteString("\n")
		}
		return b.String()
	}

	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(tableRows),
		table.WithHeight(len(tableRows)+1),
		table.WithFocused(false),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#334455")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return t.View() + "\n"
}
