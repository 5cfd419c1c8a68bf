package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/idilsaglam/sheetdb/internal/model"
)

// ViewState is what the record area shows. The states are mutually
// exclusive.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewEmpty
	ViewRecords
)

func (v ViewState) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewEmpty:
		return "empty"
	default:
		return "records"
	}
}

// ListState is a point-in-time copy of the list.
type ListState struct {
	Records []model.Record
	Loading bool
	Loaded  bool // a list call has succeeded at least once
	Settled bool // a list call has completed at least once
}

// View resolves the state to display. Stale records stay visible while a
// refetch is in flight; the loading indicator only shows before the first
// list call completes and while no load has succeeded yet.
func (s ListState) View() ViewState {
	switch {
	case !s.Settled, s.Loading && !s.Loaded:
		return ViewLoading
	case len(s.Records) == 0:
		return ViewEmpty
	default:
		return ViewRecords
	}
}

// List holds the last fetched snapshot of the collection.
type List struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	records  []model.Record
	inflight int
	loaded   bool
	settled  bool
}

// NewList returns an empty list that has not loaded yet.
func NewList(store Store, notifier Notifier, logger *slog.Logger) *List {
	if notifier == nil {
		notifier = Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &List{store: store, notifier: notifier, logger: logger}
}

// Refresh replaces the snapshot with the store's current records. On
// failure the previous records are kept and the error is logged.
func (l *List) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.inflight++
	l.mu.Unlock()

	records, err := l.store.List(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight--
	l.settled = true
	if err != nil {
		l.logger.Error("refresh_failed", "err", err)
		return fmt.Errorf("refresh: %w", err)
	}
	l.records = model.Clone(records)
	if l.records == nil {
		l.records = []model.Record{}
	}
	l.loaded = true
	l.logger.Debug("refreshed", "count", len(records))
	return nil
}

// Delete asks c for confirmation and, only if confirmed, deletes id and
// refetches. The returned bool reports whether the delete call was issued.
// A failed delete is reported to the user and triggers no refetch.
func (l *List) Delete(ctx context.Context, id string, c Confirmer) (bool, error) {
	if c == nil || !c.Confirm(DeletePrompt) {
		return false, nil
	}

	if err := l.store.Delete(ctx, id); err != nil {
		l.logger.Error("delete_failed", "id", id, "err", err)
		l.notifier.Notify(SeverityError, MsgDeleteFailed)
		return true, fmt.Errorf("delete record: %w", err)
	}

	l.logger.Info("deleted", "id", id)
	l.notifier.Notify(SeveritySuccess, MsgDeleted)
	_ = l.Refresh(ctx)
	return true, nil
}

// Snapshot returns a copy of the list state.
func (l *List) Snapshot() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ListState{
		Records: model.Clone(l.records),
		Loading: l.inflight > 0,
		Loaded:  l.loaded,
		Settled: l.settled,
	}
}

// Find returns the record with the given id from the current snapshot.
func (l *List) Find(id string) (model.Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.Record{}, false
}
