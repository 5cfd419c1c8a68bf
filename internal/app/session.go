package app

import (
	"context"
	"log/slog"

	"github.com/idilsaglam/sheetdb/internal/model"
)

// Session owns one Form and one List for a single client.
type Session struct {
	form *Form
	list *List
}

// NewSession wires a form and a list over the same store and notifier.
func NewSession(store Store, notifier Notifier, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		form: NewForm(store, notifier, logger.With("component", "form")),
		list: NewList(store, notifier, logger.With("component", "list")),
	}
	s.form.Subscribe(s.onSaved)
	return s
}

func (s *Session) onSaved(ctx context.Context, _ Saved) {
	s.form.SetTarget(nil)
	_ = s.list.Refresh(ctx)
}

// Form returns the session's form.
func (s *Session) Form() *Form { return s.form }

// List returns the session's list.
func (s *Session) List() *List { return s.list }

// Mount performs the initial fetch.
func (s *Session) Mount(ctx context.Context) error {
	return s.list.Refresh(ctx)
}

// Edit hands rec to the form as its edit target.
func (s *Session) Edit(rec model.Record) {
	s.form.SetTarget(&rec)
}

// Cancel leaves edit mode. It reports false when nothing was being edited.
func (s *Session) Cancel() bool {
	return s.form.Cancel()
}

// Submit saves the form; a success clears the edit target and refetches.
func (s *Session) Submit(ctx context.Context) error {
	return s.form.Submit(ctx)
}

// Delete removes id after confirmation, then refetches.
func (s *Session) Delete(ctx context.Context, id string, c Confirmer) (bool, error) {
	return s.list.Delete(ctx, id, c)
}
