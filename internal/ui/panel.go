package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/idilsaglam/sheetdb/internal/model"
)

// Texts shared by the table views.
const (
	EmptyText   = "No entries yet."
	LoadingText = "Loading..."
	HeaderA     = "Field A"
	HeaderB     = "Field B"
)

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	fmt.Fprintln(stdout, PanelString(strings.Join(lines, "\n")))
}

// PanelString frames inner with the current theme's border.
func PanelString(inner string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		Padding(0, 1)
	if !Colorless() {
		border = border.BorderForeground(t.BorderColor)
	}
	return border.Render(inner)
}

// Heading returns the app title block.
func Heading() []string {
	t := Current()
	return []string{
		C(t.Title, "Sheet ") + C(t.Accent, "DB"),
		C(t.Muted, "Google Sheets CRUD Client"),
	}
}

// RecordTable renders records as a table with 1-based row numbers, the
// indexes the CLI subcommands accept.
func RecordTable(records []model.Record, showIDs bool) string {
	if len(records) == 0 {
		return C(Current().Muted, EmptyText)
	}
	t := Current()

	headers := []string{"#", HeaderA, HeaderB}
	if showIDs {
		headers = append(headers, "ID")
	}
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		row := []string{fmt.Sprintf("%d", i+1), Ellipsize(r.A, 40), Ellipsize(r.B, 40)}
		if showIDs {
			row = append(row, r.ID)
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(t.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if Colorless() {
				return s
			}
			switch {
			case row == table.HeaderRow:
				return s.Inherit(t.Header)
			case col == 0:
				return s.Inherit(t.Muted)
			}
			return s
		})
	if !Colorless() {
		tbl = tbl.BorderStyle(lipgloss.NewStyle().Foreground(t.BorderColor))
	}
	return tbl.String()
}

// Ellipsize cuts s to at most max runes, marking the cut with "...".
func Ellipsize(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
