// Package tui is the interactive terminal client: a form with two fields,
// the record table and toast notifications, driven by an app.Session.
//
// Every store call runs inside a tea.Cmd so the screen never blocks; the
// view renders controller snapshots on each frame.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/sheetdb/internal/app"
	"github.com/idilsaglam/sheetdb/internal/ui"
)

type focus int

const (
	focusTable focus = iota
	focusA
	focusB
)

// Results of the store commands.
type (
	refreshedMsg struct{ err error }
	submittedMsg struct{ err error }
	deletedMsg   struct {
		issued bool
		err    error
	}
)

// Model is the bubbletea model of the client.
type Model struct {
	ctx     context.Context
	session *app.Session
	toasts  *Toasts

	table   table.Model
	rowIDs  []string
	inA     textinput.Model
	inB     textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus      focus
	submitting bool   // submit control disabled
	confirmID  string // non-empty while the delete prompt is open
	formErr    string
	width      int
	height     int
}

// New builds the model. toasts must be the notifier the session was built
// with so notifications show up on screen.
func New(ctx context.Context, session *app.Session, toasts *Toasts) Model {
	inA := textinput.New()
	inA.Prompt = "> "
	inA.Placeholder = "Enter value for Field A"
	inA.CharLimit = 0 // cells have no length limit

	inB := textinput.New()
	inB.Prompt = "> "
	inB.Placeholder = "Enter value for Field B"
	inB.CharLimit = 0

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		session: session,
		toasts:  toasts,
		table:   t,
		inA:     inA,
		inB:     inB,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		width:   80,
		height:  24,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, session *app.Session, toasts *Toasts) error {
	p := tea.NewProgram(New(ctx, session, toasts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.mountCmd(), m.spinner.Tick)
}

func (m Model) mountCmd() tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg { return refreshedMsg{err: s.Mount(ctx)} }
}

func (m Model) submitCmd() tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg { return submittedMsg{err: s.Submit(ctx)} }
}

func (m Model) deleteCmd(id string) tea.Cmd {
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		// The prompt was answered in the UI before this command was issued.
		issued, err := s.Delete(ctx, id, app.Yes)
		return deletedMsg{issued: issued, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.toasts.Active()
		return m, cmd

	case refreshedMsg:
		m.syncRows()
		return m, nil

	case submittedMsg:
		m.submitting = false
		switch {
		case errors.Is(msg.err, app.ErrEmptyField):
			m.formErr = "Both fields are required."
		case msg.err == nil:
			m.formErr = ""
			m.syncInputs()
		}
		m.syncRows()
		return m, nil

	case deletedMsg:
		m.syncRows()
		return m, nil

	case tea.KeyMsg:
		if m.confirmID != "" {
			return m.updateConfirm(msg)
		}
		if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || m.focus == focusTable) {
			return m, tea.Quit
		}
		if m.focus == focusTable {
			return m.updateTable(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	m.confirmID = ""
	switch msg.String() {
	case "y", "Y":
		return m, m.deleteCmd(id)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		m.formErr = ""
		return m, m.setFocus(focusA)

	case key.Matches(msg, m.keys.Edit):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		rec, found := m.session.List().Find(id)
		if !found {
			return m, nil
		}
		m.session.Edit(rec)
		m.syncInputs()
		m.formErr = ""
		return m, m.setFocus(focusA)

	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			m.confirmID = id
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.mountCmd()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.session.Cancel() {
			m.syncInputs()
		}
		m.formErr = ""
		return m, m.setFocus(focusTable)

	case key.Matches(msg, m.keys.Next):
		if m.focus == focusA {
			return m, m.setFocus(focusB)
		}
		return m, m.setFocus(focusA)

	case key.Matches(msg, m.keys.Submit):
		if m.focus == focusA {
			return m, m.setFocus(focusB)
		}
		return m.submit()
	}

	// The inputs are single-line, so a loaded cell may be displayed
	// differently from its stored value. The form only takes the input's
	// value once the user actually changed it.
	var cmd tea.Cmd
	if m.focus == focusA {
		before := m.inA.Value()
		m.inA, cmd = m.inA.Update(msg)
		if v := m.inA.Value(); v != before {
			m.session.Form().SetA(v)
		}
	} else {
		before := m.inB.Value()
		m.inB, cmd = m.inB.Update(msg)
		if v := m.inB.Value(); v != before {
			m.session.Form().SetB(v)
		}
	}
	return m, cmd
}

// submit launches one save unless one is already running. Blank fields are
// caught here, like a required input would.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting || m.session.Form().Status() == app.StatusSaving {
		return m, nil
	}
	st := m.session.Form().State()
	if isBlank(st.A) || isBlank(st.B) {
		m.formErr = "Both fields are required."
		return m, nil
	}
	m.formErr = ""
	m.submitting = true
	return m, m.submitCmd()
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.inA.Blur()
	m.inB.Blur()
	switch f {
	case focusA:
		m.table.Blur()
		return m.inA.Focus()
	case focusB:
		m.table.Blur()
		return m.inB.Focus()
	default:
		m.table.Focus()
		return nil
	}
}

// syncInputs copies the form's field values into the text inputs, after the
// edit target changed underneath them.
func (m *Model) syncInputs() {
	st := m.session.Form().State()
	m.inA.SetValue(st.A)
	m.inB.SetValue(st.B)
	m.inA.CursorEnd()
	m.inB.CursorEnd()
}

func (m *Model) syncRows() {
	snap := m.session.List().Snapshot()
	rows := make([]table.Row, 0, len(snap.Records))
	ids := make([]string, 0, len(snap.Records))
	for _, r := range snap.Records {
		rows = append(rows, table.Row{r.A, r.B})
		ids = append(ids, r.ID)
	}
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	m.rowIDs = ids
	if len(rows) > 0 {
		if cursor >= len(rows) {
			cursor = len(rows) - 1
		}
		if cursor < 0 {
			cursor = 0
		}
		m.table.SetCursor(cursor)
	}
}

func (m Model) selectedID() (string, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rowIDs) {
		return "", false
	}
	return m.rowIDs[i], true
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 30 {
		w = 30
	}
	m.inA.Width = w - 4
	m.inB.Width = w - 4
	m.table.SetColumns(columns(w))
	m.table.SetWidth(w)
	h := m.height - 22
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.help.Width = m.width
}

func columns(width int) []table.Column {
	col := (width - 6) / 2
	if col < 12 {
		col = 12
	}
	return []table.Column{
		{Title: ui.HeaderA, Width: col},
		{Title: ui.HeaderB, Width: col},
	}
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
