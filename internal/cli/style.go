package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/export"
)

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }

// renderTable draws headers and rows with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// printReport writes a report table with its title block and summary line.
func printReport(w io.Writer, t export.Table) {
	_, _ = fmt.Fprintln(w, Primary(t.Title))
	if t.Subtitle != "" {
		_, _ = fmt.Fprintln(w, Silent(t.Subtitle))
	}
	_, _ = fmt.Fprintln(w, renderTable(t.Headers, t.Rows))
	if t.Summary != "" {
		_, _ = fmt.Fprintln(w, t.Summary)
	}
}
