package app

import (
	"context"
	"errors"
	"sync"

	"github.com/idilsaglam/sheetdb/internal/model"
)

var errBoom = errors.New("boom")

type call struct {
	Op     string
	ID     string
	Record model.Record
}

// fakeStore is an in-memory Store that records every call. Setting one of
// the fail* fields makes the next matching call fail.
type fakeStore struct {
	mu      sync.Mutex
	records []model.Record
	calls   []call

	failList   bool
	failCreate bool
	failUpdate bool
	failDelete bool

	// onList runs inside List, before it returns.
	onList func()
}

func newFakeStore(records ...model.Record) *fakeStore {
	return &fakeStore{records: records}
}

func (s *fakeStore) List(ctx context.Context) ([]model.Record, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{Op: "list"})
	fail := s.failList
	out := model.Clone(s.records)
	hook := s.onList
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	if fail {
		return nil, errBoom
	}
	if out == nil {
		out = []model.Record{}
	}
	return out, nil
}

func (s *fakeStore) Create(ctx context.Context, rec model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{Op: "create", ID: rec.ID, Record: rec})
	if s.failCreate {
		return errBoom
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *fakeStore) Update(ctx context.Context, id string, rec model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{Op: "update", ID: id, Record: rec})
	if s.failUpdate {
		return errBoom
	}
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = rec
		}
	}
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{Op: "delete", ID: id})
	if s.failDelete {
		return errBoom
	}
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeStore) ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Op
	}
	return out
}

func (s *fakeStore) callAt(i int) call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[i]
}

func (s *fakeStore) resetCalls() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

type note struct {
	Sev Severity
	Msg string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (n *recordingNotifier) Notify(sev Severity, msg string) {
	n.mu.Lock()
	n.notes = append(n.notes, note{sev, msg})
	n.mu.Unlock()
}

func (n *recordingNotifier) all() []note {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]note(nil), n.notes...)
}
