package markdown

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

// RenderFocusTable renders rows of position, id, uuid, key and description.
func RenderFocusTable(rows [][]string) string {
	if len(rows) == 0 {
		return "No focused tasks."
	}
	return renderTable([]string{"#", "ID", "UUID", "Key", "Description"}, rows)
}

// RenderPlanTable renders rows of id, uuid, description, old key and new key.
func RenderPlanTable(rows [][]string) string {
	if len(rows) == 0 {
		return "Nothing to change."
	}
	return renderTable([]string{"ID", "UUID", "Description", "From", "To"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
