package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/sheetdb/internal/app"
	"github.com/idilsaglam/sheetdb/internal/ui"
)

func tableStyles() table.Styles {
	t := ui.Current()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.BorderColor).
		BorderBottom(true).
		Inherit(t.Header)
	s.Selected = t.Selected
	return s
}

func (m Model) View() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(strings.Join(ui.Heading(), "\n"))
	b.WriteString("\n")
	if toasts := m.viewToasts(); toasts != "" {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(ui.PanelString(m.viewForm()))
	b.WriteString("\n")
	b.WriteString(ui.PanelString(m.viewRecords()))
	b.WriteString("\n")

	if m.confirmID != "" {
		b.WriteString(ui.C(t.Warn, app.DeletePrompt+" [y/N]"))
		b.WriteString("\n")
		return b.String()
	}

	if m.focus == focusTable {
		b.WriteString(m.help.View(tableKeys{k: m.keys}))
	} else {
		editing := m.session.Form().State().Editing()
		b.WriteString(m.help.View(formKeys{k: m.keys, editing: editing}))
	}
	return b.String()
}

func (m Model) viewForm() string {
	t := ui.Current()
	st := m.session.Form().State()
	saving := m.submitting || st.Status == app.StatusSaving

	title := "+ Entry"
	if st.Editing() {
		title = "Edit Entry"
	}

	label := func(s string, focused bool) string {
		if focused {
			return ui.C(t.Focused, s)
		}
		return ui.C(t.Muted, s)
	}

	lines := []string{
		ui.C(t.Accent, title),
		"",
		label(ui.HeaderA, m.focus == focusA),
		m.inA.View(),
		label(ui.HeaderB, m.focus == focusB),
		m.inB.View(),
		"",
	}

	var button string
	switch {
	case saving && st.Editing():
		button = m.spinner.View() + " Updating..."
	case saving:
		button = m.spinner.View() + " Saving..."
	case st.Editing():
		button = "[ Update ]"
	default:
		button = "[ Save ]"
	}
	if saving {
		button = ui.C(t.Muted, button)
	} else {
		button = ui.C(t.Success, button)
	}
	if st.Editing() {
		button += "  " + ui.C(t.Muted, "[ Cancel ]")
	}
	lines = append(lines, button)

	if m.formErr != "" {
		lines = append(lines, ui.C(t.Error, m.formErr))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewRecords() string {
	t := ui.Current()
	snap := m.session.List().Snapshot()
	switch snap.View() {
	case app.ViewLoading:
		return ui.C(t.Muted, m.spinner.View()+" "+ui.LoadingText)
	case app.ViewEmpty:
		return ui.C(t.Muted, ui.EmptyText)
	}
	out := m.table.View()
	if snap.Loading {
		out += "\n" + ui.C(t.Muted, m.spinner.View()+" refreshing")
	}
	return out
}

func (m Model) viewToasts() string {
	t := ui.Current()
	active := m.toasts.Active()
	if len(active) == 0 {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)
	lines := make([]string, 0, len(active))
	for _, it := range active {
		if it.Severity == app.SeverityError {
			lines = append(lines, ui.C(t.Error, t.SymFail+" "+it.Text))
		} else {
			lines = append(lines, ui.C(t.Success, t.SymOK+" "+it.Text))
		}
	}
	return box.Render(strings.Join(lines, "\n"))
}
