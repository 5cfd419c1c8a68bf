package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/sheetdb/internal/app"
	"github.com/idilsaglam/sheetdb/internal/logx"
	"github.com/idilsaglam/sheetdb/internal/model"
	"github.com/idilsaglam/sheetdb/internal/store/jsonstore"
)

type harness struct {
	store  *jsonstore.Store
	toasts *Toasts
	m      Model
}

func newHarness(t *testing.T, seed ...model.Record) *harness {
	t.Helper()
	ctx := context.Background()
	st := jsonstore.New(filepath.Join(t.TempDir(), "records.json"))
	for _, r := range seed {
		require.NoError(t, st.Create(ctx, r))
	}
	toasts := NewToasts(0)
	session := app.NewSession(st, toasts, logx.Pkg("tui_test"))
	return &harness{store: st, toasts: toasts, m: New(ctx, session, toasts)}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// run executes a store command synchronously and feeds its result back.
func (h *harness) run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	h.send(msg)
	return msg
}

func (h *harness) mount(t *testing.T) {
	t.Helper()
	h.run(t, h.m.mountCmd())
}

func (h *harness) records(t *testing.T) []model.Record {
	t.Helper()
	out, err := h.store.List(context.Background())
	require.NoError(t, err)
	return out
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestView_LoadingBeforeMount(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.m.View(), "Loading...")
	assert.Contains(t, h.m.View(), "Google Sheets CRUD Client")
}

func TestView_EmptyAfterMount(t *testing.T) {
	h := newHarness(t)
	h.mount(t)
	v := h.m.View()
	assert.Contains(t, v, "No entries yet.")
	assert.NotContains(t, v, "Loading...")
}

func TestView_ListsRecords(t *testing.T) {
	h := newHarness(t,
		model.Record{ID: "1", A: "apple", B: "red"},
		model.Record{ID: "2", A: "pear", B: "green"},
	)
	h.mount(t)
	v := h.m.View()
	assert.Contains(t, v, "apple")
	assert.Contains(t, v, "green")
	assert.Equal(t, []string{"1", "2"}, h.m.rowIDs)
}

func TestAddEntry(t *testing.T) {
	h := newHarness(t)
	h.mount(t)

	h.send(runes("a"))
	require.Equal(t, focusA, h.m.focus)
	assert.Contains(t, h.m.View(), "+ Entry")

	h.send(runes("hello"))
	h.send(keyTab)
	h.send(runes("world"))
	msg := h.run(t, h.send(keyEnter))

	require.IsType(t, submittedMsg{}, msg)
	require.NoError(t, msg.(submittedMsg).err)

	recs := h.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "hello", recs[0].A)
	assert.Equal(t, "world", recs[0].B)
	assert.NotEmpty(t, recs[0].ID)

	assert.Empty(t, h.m.inA.Value())
	assert.Empty(t, h.m.inB.Value())
	assert.False(t, h.m.submitting)
	assert.Equal(t, []string{recs[0].ID}, h.m.rowIDs)
	assert.Contains(t, h.m.View(), app.MsgSaved)
}

func TestSubmit_BlankFieldsNeverReachStore(t *testing.T) {
	h := newHarness(t)
	h.mount(t)

	h.send(runes("a"))
	h.send(runes("only a"))
	h.send(keyTab)
	cmd := h.send(keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, "Both fields are required.", h.m.formErr)
	assert.Contains(t, h.m.View(), "Both fields are required.")
	assert.Empty(t, h.records(t))
}

func TestSubmit_IgnoredWhileSubmitting(t *testing.T) {
	h := newHarness(t)
	h.mount(t)
	h.send(runes("a"))
	h.send(runes("x"))
	h.send(keyTab)
	h.send(runes("y"))

	first := h.send(keyEnter)
	require.NotNil(t, first)
	assert.True(t, h.m.submitting)
	assert.Nil(t, h.send(keyEnter))
}

func TestEditEntry(t *testing.T) {
	h := newHarness(t, model.Record{ID: "r1", A: "old a", B: "old b"})
	h.mount(t)

	h.send(runes("e"))
	require.Equal(t, focusA, h.m.focus)
	assert.Equal(t, "old a", h.m.inA.Value())
	assert.Equal(t, "old b", h.m.inB.Value())
	v := h.m.View()
	assert.Contains(t, v, "Edit Entry")
	assert.Contains(t, v, "[ Update ]")
	assert.Contains(t, v, "[ Cancel ]")

	h.send(tea.KeyMsg{Type: tea.KeyCtrlU})
	h.send(runes("new a"))
	h.send(keyTab)
	msg := h.run(t, h.send(keyEnter))
	require.NoError(t, msg.(submittedMsg).err)

	recs := h.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, model.Record{ID: "r1", A: "new a", B: "old b"}, recs[0])
	assert.False(t, h.m.session.Form().State().Editing())
	assert.Empty(t, h.m.inA.Value())
}

func TestEditEntry_UntouchedFieldIsSentAsStored(t *testing.T) {
	tests := []struct {
		name string
		a    string
	}{
		{"long cell", strings.Repeat("x", 600)},
		{"multi-line cell", "line1\nline2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, model.Record{ID: "1", A: tt.a, B: "y"})
			h.mount(t)

			h.send(runes("e"))
			h.send(keyEnter)
			require.Equal(t, focusB, h.m.focus)
			h.send(runes("z"))
			msg := h.run(t, h.send(keyEnter))
			require.NoError(t, msg.(submittedMsg).err)

			recs := h.records(t)
			require.Len(t, recs, 1)
			assert.Equal(t, model.Record{ID: "1", A: tt.a, B: "yz"}, recs[0])
		})
	}
}

func TestEditEntry_CursorKeysDoNotTouchField(t *testing.T) {
	h := newHarness(t, model.Record{ID: "1", A: "line1\nline2", B: "y"})
	h.mount(t)

	h.send(runes("e"))
	h.send(tea.KeyMsg{Type: tea.KeyLeft})
	h.send(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, "line1\nline2", h.m.session.Form().State().A)
}

func TestCancelEdit(t *testing.T) {
	h := newHarness(t, model.Record{ID: "r1", A: "a", B: "b"})
	h.mount(t)

	h.send(runes("e"))
	require.True(t, h.m.session.Form().State().Editing())

	h.send(keyEsc)
	assert.Equal(t, focusTable, h.m.focus)
	assert.False(t, h.m.session.Form().State().Editing())
	assert.Empty(t, h.m.inA.Value())
	assert.Empty(t, h.m.inB.Value())
	assert.NotContains(t, h.m.View(), "[ Cancel ]")
}

func TestDelete_Confirmed(t *testing.T) {
	h := newHarness(t,
		model.Record{ID: "r1", A: "a", B: "b"},
		model.Record{ID: "r2", A: "c", B: "d"},
	)
	h.mount(t)

	assert.Nil(t, h.send(runes("d")))
	assert.Equal(t, "r1", h.m.confirmID)
	assert.Contains(t, h.m.View(), app.DeletePrompt)

	msg := h.run(t, h.send(runes("y")))
	del := msg.(deletedMsg)
	assert.True(t, del.issued)
	assert.NoError(t, del.err)

	recs := h.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "r2", recs[0].ID)
	assert.Equal(t, []string{"r2"}, h.m.rowIDs)
	assert.Empty(t, h.m.confirmID)
	assert.Contains(t, h.m.View(), app.MsgDeleted)
}

func TestDelete_Declined(t *testing.T) {
	h := newHarness(t, model.Record{ID: "r1", A: "a", B: "b"})
	h.mount(t)

	h.send(runes("d"))
	cmd := h.send(runes("n"))

	assert.Nil(t, cmd)
	assert.Empty(t, h.m.confirmID)
	assert.Len(t, h.records(t), 1)
	assert.NotContains(t, h.m.View(), app.DeletePrompt)
}

func TestDelete_NoRows(t *testing.T) {
	h := newHarness(t)
	h.mount(t)
	h.send(runes("d"))
	assert.Empty(t, h.m.confirmID)
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	h.mount(t)

	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestQuit_TypedInsideForm(t *testing.T) {
	h := newHarness(t)
	h.mount(t)
	h.send(runes("a"))
	h.send(runes("q"))
	assert.Equal(t, "q", h.m.inA.Value())
}

func TestResize(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, h.m.width)
	cols := h.m.table.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, cols[0].Width, cols[1].Width)
}
