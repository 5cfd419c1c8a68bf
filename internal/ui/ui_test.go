package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/sheetdb/internal/app"
	"github.com/idilsaglam/sheetdb/internal/model"
)

func plainOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	SetColorForcing(false, true)
	t.Cleanup(func() {
		SetOutput(os.Stdout, os.Stderr)
		SetColorForcing(false, false)
		SetTheme("classic")
	})
	return &out, &errOut
}

func TestNotifier_RoutesBySeverity(t *testing.T) {
	out, errOut := plainOutput(t)

	Notifier{}.Notify(app.SeveritySuccess, app.MsgSaved)
	Notifier{}.Notify(app.SeverityError, app.MsgSaveFailed)

	assert.Equal(t, "✔ Saved successfully!\n", out.String())
	assert.Equal(t, "✖ Error saving data.\n", errOut.String())
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := PromptConfirmer{In: strings.NewReader(tt.input), Out: &out}.Confirm(app.DeletePrompt)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), app.DeletePrompt)
	}
}

func TestRecordTable(t *testing.T) {
	plainOutput(t)

	assert.Equal(t, EmptyText, RecordTable(nil, false))

	got := RecordTable([]model.Record{
		{ID: "id-1", A: "x", B: "y"},
		{ID: "id-2", A: "p", B: "q"},
	}, true)
	for _, want := range []string{HeaderA, HeaderB, "ID", "id-1", "id-2", " 2 "} {
		assert.Contains(t, got, want)
	}

	got = RecordTable([]model.Record{{ID: "id-1", A: "x", B: "y"}}, false)
	assert.NotContains(t, got, "id-1")
}

func TestEllipsize(t *testing.T) {
	assert.Equal(t, "short", Ellipsize("short", 10))
	assert.Equal(t, "abcdefg...", Ellipsize("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", Ellipsize("éééééééé", 6))
	assert.Equal(t, "abcdef", Ellipsize("abcdef", 2))
}

func TestSetTheme(t *testing.T) {
	plainOutput(t)

	SetTheme("NEON")
	assert.Equal(t, "neon", Current().Name)
	SetTheme("unknown")
	assert.Equal(t, "classic", Current().Name)
	SetTheme("mono")
	assert.Equal(t, "mono", Current().Name)
	assert.True(t, Colorless())
}
