package app

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/sheetdb/internal/model"
)

func TestForm_StatusTransitionsOnSuccess(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	f := NewForm(store, nil, quietLogger())

	var seen []FormStatus
	f.Observe(func(s FormStatus) { seen = append(seen, s) })

	f.SetA("x")
	f.SetB("y")
	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, []FormStatus{StatusSaving, StatusSuccess, StatusIdle}, seen)
	assert.Equal(t, StatusIdle, f.Status())
}

func TestForm_FailureKeepsFieldsAndNotifies(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.failCreate = true
	n := &recordingNotifier{}
	f := NewForm(store, n, quietLogger())

	var seen []FormStatus
	f.Observe(func(s FormStatus) { seen = append(seen, s) })
	published := false
	f.Subscribe(func(context.Context, Saved) { published = true })

	f.SetA("x")
	f.SetB("y")
	err := f.Submit(context.Background())

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []FormStatus{StatusSaving, StatusError, StatusIdle}, seen)
	assert.False(t, published)
	assert.Equal(t, []note{{SeverityError, MsgSaveFailed}}, n.all())

	st := f.State()
	assert.Equal(t, "x", st.A)
	assert.Equal(t, "y", st.B)
}

func TestForm_EmptyFieldMakesNoCall(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	f := NewForm(store, nil, quietLogger())

	f.SetA("x")
	f.SetB("   ")
	assert.ErrorIs(t, f.Submit(context.Background()), ErrEmptyField)
	assert.Empty(t, store.ops())
	assert.Equal(t, StatusIdle, f.Status())
}

func TestForm_SubmitWhileSavingIsRejected(t *testing.T) {
	t.Parallel()
	store := &blockingStore{fakeStore: newFakeStore(), release: make(chan struct{}), entered: make(chan struct{})}
	f := NewForm(store, nil, quietLogger())
	f.SetA("x")
	f.SetB("y")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = f.Submit(context.Background())
	}()

	<-store.entered
	assert.Equal(t, StatusSaving, f.Status())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrSubmitInFlight)

	close(store.release)
	wg.Wait()
	assert.Equal(t, []string{"create"}, store.ops())
}

func TestForm_ConcurrentSubmitsNeverOverlap(t *testing.T) {
	t.Parallel()
	store := &overlapStore{fakeStore: newFakeStore()}
	f := NewForm(store, nil, quietLogger())
	f.SetA("x")
	f.SetB("y")

	start := make(chan struct{})
	var wg sync.WaitGroup
	var rejected atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if err := f.Submit(context.Background()); err != nil {
				assert.ErrorIs(t, err, ErrSubmitInFlight)
				rejected.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), store.maxInFlight.Load())
	assert.Equal(t, 16, len(store.ops())+int(rejected.Load()))
}

func TestForm_SetTargetResetsFieldsButNotStatus(t *testing.T) {
	t.Parallel()
	f := NewForm(newFakeStore(), nil, quietLogger())

	f.SetA("typed")
	rec := model.Record{ID: "1", A: "x", B: "y"}
	f.SetTarget(&rec)
	rec.A = "mutated after handing over"

	st := f.State()
	require.NotNil(t, st.Target)
	assert.Equal(t, "x", st.Target.A)
	assert.Equal(t, "x", st.A)
	assert.Equal(t, "y", st.B)
	assert.Equal(t, StatusIdle, st.Status)

	other := model.Record{ID: "2", A: "p", B: "q"}
	f.SetTarget(&other)
	assert.Equal(t, "p", f.State().A)

	f.SetTarget(nil)
	assert.Empty(t, f.State().A)
	assert.Nil(t, f.State().Target)
}

func TestForm_SubscribersSeeSavedEvent(t *testing.T) {
	t.Parallel()
	f := NewForm(newFakeStore(), nil, quietLogger())

	var got []Saved
	f.Subscribe(func(_ context.Context, e Saved) {
		assert.Equal(t, StatusSuccess, f.Status(), "event runs before returning to idle")
		got = append(got, e)
	})

	f.SetA("x")
	f.SetB("y")
	require.NoError(t, f.Submit(context.Background()))

	require.Len(t, got, 1)
	assert.True(t, got[0].Created)
	assert.NotEmpty(t, got[0].Record.ID)
}

// blockingStore holds Create until release is closed.
type blockingStore struct {
	*fakeStore
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) Create(ctx context.Context, rec model.Record) error {
	close(s.entered)
	<-s.release
	return s.fakeStore.Create(ctx, rec)
}

// overlapStore records the highest number of Create calls running at once.
type overlapStore struct {
	*fakeStore
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (s *overlapStore) Create(ctx context.Context, rec model.Record) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	return s.fakeStore.Create(ctx, rec)
}
