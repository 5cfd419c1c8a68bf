package app

import (
	"context"

	"github.com/idilsaglam/sheetdb/internal/model"
)

// Store is the remote record store. Implementations perform one request per
// call and keep no state.
type Store interface {
	List(ctx context.Context) ([]model.Record, error)
	Create(ctx context.Context, rec model.Record) error
	Update(ctx context.Context, id string, rec model.Record) error
	Delete(ctx context.Context, id string) error
}

// Severity of a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier shows a transient, non-blocking message.
type Notifier interface {
	Notify(sev Severity, msg string)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(sev Severity, msg string)

func (f NotifyFunc) Notify(sev Severity, msg string) { f(sev, msg) }

// Discard drops every notification.
var Discard Notifier = NotifyFunc(func(Severity, string) {})

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	// Yes confirms without asking.
	Yes Confirmer = ConfirmFunc(func(string) bool { return true })
	// No declines without asking.
	No Confirmer = ConfirmFunc(func(string) bool { return false })
)

// User-facing texts.
const (
	MsgSaved        = "Saved successfully!"
	MsgSaveFailed   = "Error saving data."
	MsgDeleted      = "Entry Deleted"
	MsgDeleteFailed = "Error deleting entry."
	DeletePrompt    = "Are you sure you want to delete this entry?"
)
