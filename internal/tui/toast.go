package tui

import (
	"sync"
	"time"

	"github.com/idilsaglam/sheetdb/internal/app"
)

const (
	defaultToastTTL = 3 * time.Second
	maxToasts       = 3
)

// Toast is one transient notification.
type Toast struct {
	Severity app.Severity
	Text     string
	Expires  time.Time
}

// Toasts is the notification surface of the interactive UI. Notify may be
// called from command goroutines; the view reads Active on every render.
type Toasts struct {
	mu    sync.Mutex
	items []Toast
	ttl   time.Duration
	now   func() time.Time
}

// NewToasts returns a queue whose toasts disappear after ttl (3s when ttl
// is not positive).
func NewToasts(ttl time.Duration) *Toasts {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	return &Toasts{ttl: ttl, now: time.Now}
}

// Notify implements app.Notifier.
func (t *Toasts) Notify(sev app.Severity, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, Toast{Severity: sev, Text: msg, Expires: t.now().Add(t.ttl)})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
}

// Active drops expired toasts and returns the rest, oldest first.
func (t *Toasts) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	kept := t.items[:0]
	for _, it := range t.items {
		if now.Before(it.Expires) {
			kept = append(kept, it)
		}
	}
	t.items = kept
	return append([]Toast(nil), kept...)
}
