package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/sheetdb/internal/model"
)

var (
	// ErrSubmitInFlight is returned while a previous submit is saving. It
	// stands for the disabled submit control.
	ErrSubmitInFlight = errors.New("submit already in progress")
	// ErrEmptyField is returned when a field is blank; no call is made.
	ErrEmptyField = errors.New("both fields are required")
)

// FormStatus is the submit state of the form.
type FormStatus string

const (
	StatusIdle    FormStatus = "idle"
	StatusSaving  FormStatus = "saving"
	StatusSuccess FormStatus = "success"
	StatusError   FormStatus = "error"
)

func (s FormStatus) String() string { return string(s) }

// Saved is published after a successful create or update.
type Saved struct {
	Record  model.Record
	Created bool
}

// FormState is a point-in-time copy of the form.
type FormState struct {
	Target *model.Record
	A, B   string
	Status FormStatus
}

// Editing reports whether an edit target is set.
func (s FormState) Editing() bool { return s.Target != nil }

// Form turns one submit into exactly one create or update call.
type Form struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	newID    func() string

	mu          sync.Mutex
	target      *model.Record
	a, b        string
	status      FormStatus
	subscribers []func(context.Context, Saved)
	observers   []func(FormStatus)
}

// NewForm returns an idle form with no edit target.
func NewForm(store Store, notifier Notifier, logger *slog.Logger) *Form {
	if notifier == nil {
		notifier = Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{
		store:    store,
		notifier: notifier,
		logger:   logger,
		newID:    uuid.NewString,
		status:   StatusIdle,
	}
}

// Subscribe registers fn to run after every successful save, before the
// form returns to idle.
func (f *Form) Subscribe(fn func(context.Context, Saved)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, fn)
}

// Observe registers fn to run on every status transition.
func (f *Form) Observe(fn func(FormStatus)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, fn)
}

// SetTarget selects rec for editing, or clears the target when rec is nil.
// Field values are reset to the target's values (empty without one); the
// status is left alone.
func (f *Form) SetTarget(rec *model.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec == nil {
		f.target = nil
		f.a, f.b = "", ""
		return
	}
	cp := *rec
	f.target = &cp
	f.a, f.b = cp.A, cp.B
}

// Cancel clears the edit target without any network call. It does nothing
// and returns false when no target is set.
func (f *Form) Cancel() bool {
	f.mu.Lock()
	editing := f.target != nil
	f.mu.Unlock()
	if !editing {
		return false
	}
	f.SetTarget(nil)
	return true
}

// SetA sets the Field A value.
func (f *Form) SetA(v string) {
	f.mu.Lock()
	f.a = v
	f.mu.Unlock()
}

// SetB sets the Field B value.
func (f *Form) SetB(v string) {
	f.mu.Lock()
	f.b = v
	f.mu.Unlock()
}

// State returns a copy of the form.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := FormState{A: f.a, B: f.b, Status: f.status}
	if f.target != nil {
		cp := *f.target
		st.Target = &cp
	}
	return st
}

// Status returns the current submit status.
func (f *Form) Status() FormStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submit creates a record with a fresh id when no target is set, and
// otherwise updates the target under its existing id with the current field
// values. On failure the field values are kept so the user can retry.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.status == StatusSaving {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if strings.TrimSpace(f.a) == "" || strings.TrimSpace(f.b) == "" {
		f.mu.Unlock()
		return ErrEmptyField
	}
	created := f.target == nil
	var rec model.Record
	if created {
		rec = model.Record{ID: f.newID(), A: f.a, B: f.b}
	} else {
		rec = f.target.WithFields(f.a, f.b)
	}
	// Claim the form before unlocking so a concurrent Submit sees it busy.
	f.status = StatusSaving
	f.mu.Unlock()
	f.notifyObservers(StatusSaving)

	var err error
	if created {
		err = f.store.Create(ctx, rec)
	} else {
		err = f.store.Update(ctx, rec.ID, rec)
	}
	if err != nil {
		f.logger.Error("save_failed", "id", rec.ID, "created", created, "err", err)
		f.transition(StatusError)
		f.notifier.Notify(SeverityError, MsgSaveFailed)
		f.transition(StatusIdle)
		return fmt.Errorf("save record: %w", err)
	}

	f.logger.Info("saved", "id", rec.ID, "created", created)
	f.transition(StatusSuccess)
	f.notifier.Notify(SeveritySuccess, MsgSaved)
	f.publish(ctx, Saved{Record: rec, Created: created})
	f.transition(StatusIdle)
	return nil
}

func (f *Form) transition(s FormStatus) {
	f.mu.Lock()
	f.status = s
	f.mu.Unlock()
	f.notifyObservers(s)
}

func (f *Form) notifyObservers(s FormStatus) {
	f.mu.Lock()
	observers := append(([]func(FormStatus))(nil), f.observers...)
	f.mu.Unlock()
	for _, fn := range observers {
		fn(s)
	}
}

func (f *Form) publish(ctx context.Context, e Saved) {
	f.mu.Lock()
	subscribers := append(([]func(context.Context, Saved))(nil), f.subscribers...)
	f.mu.Unlock()
	for _, fn := range subscribers {
		fn(ctx, e)
	}
}
