package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/sheetdb/internal/app"
)

func TestToasts_Expire(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := NewToasts(time.Second)
	q.now = func() time.Time { return now }

	q.Notify(app.SeveritySuccess, app.MsgSaved)
	now = now.Add(500 * time.Millisecond)
	q.Notify(app.SeverityError, app.MsgSaveFailed)

	assert.Len(t, q.Active(), 2)

	now = now.Add(600 * time.Millisecond)
	active := q.Active()
	if assert.Len(t, active, 1) {
		assert.Equal(t, app.MsgSaveFailed, active[0].Text)
		assert.Equal(t, app.SeverityError, active[0].Severity)
	}

	now = now.Add(time.Second)
	assert.Empty(t, q.Active())
}

func TestToasts_KeepsNewest(t *testing.T) {
	q := NewToasts(time.Minute)
	for _, msg := range []string{"one", "two", "three", "four"} {
		q.Notify(app.SeveritySuccess, msg)
	}
	active := q.Active()
	var texts []string
	for _, it := range active {
		texts = append(texts, it.Text)
	}
	assert.Equal(t, []string{"two", "three", "four"}, texts)
}

func TestNewToasts_DefaultTTL(t *testing.T) {
	assert.Equal(t, defaultToastTTL, NewToasts(0).ttl)
}
