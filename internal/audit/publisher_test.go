package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/platform/metrics"
	"storefront/pkg/requestcontext"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	userID := uuid.NewString()
	err := pub.Emit(context.Background(), Event{UserID: userID, Action: ActionSignIn})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionSignIn, events[0].Action)
	assert.Equal(t, CategorySecurity, events[0].Category)
	assert.NotEmpty(t, events[0].ID)
}

func TestPublisher_AsyncModeDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	userID := uuid.NewString()
	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), Event{UserID: userID, Action: ActionOrderPlaced}))
	}
	pub.Close()

	events, err := store.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_BufferFullDropsAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	blocking := &blockingStore{release: make(chan struct{})}
	pub := NewPublisher(blocking, WithAsyncBuffer(1), WithMetrics(m))

	// First event is taken by the worker and blocks; the second fills the
	// buffer; everything after is dropped.
	require.NoError(t, pub.Emit(context.Background(), Event{Action: ActionSignIn}))
	require.Eventually(t, func() bool { return blocking.started() }, time.Second, 5*time.Millisecond)
	require.NoError(t, pub.Emit(context.Background(), Event{Action: ActionSignIn}))

	err := pub.Emit(context.Background(), Event{Action: ActionSignIn})
	assert.ErrorIs(t, err, ErrBufferFull)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuditDropped))

	close(blocking.release)
	pub.Close()
	assert.Equal(t, 2, blocking.count())
}

func TestPublisher_ConcurrentEmitDoesNotPanic(t *testing.T) {
	pub := NewPublisher(NewInMemoryStore(), WithAsyncBuffer(1))
	defer pub.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			_ = pub.Emit(context.Background(), Event{Action: ActionSignOut})
		})
	}
	wg.Wait()
}

func TestPublisher_EmitAfterCloseFails(t *testing.T) {
	pub := NewPublisher(NewInMemoryStore(), WithAsyncBuffer(4))
	pub.Close()
	pub.Close()

	err := pub.Emit(context.Background(), Event{Action: ActionSignOut})
	assert.Error(t, err)
}

func TestPublisher_EnrichesFromRequestContext(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	ctx = requestcontext.WithSessionID(ctx, "sess-1")
	ctx = requestcontext.WithUserID(ctx, "user-1")
	ctx = requestcontext.WithTime(ctx, at)
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7",
		"Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0")

	require.NoError(t, pub.Emit(ctx, Event{Action: ActionCheckoutStarted}))

	events, err := pub.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, "sess-1", e.SessionID)
	assert.Equal(t, "203.0.113.7", e.ClientIP)
	assert.Equal(t, at, e.Timestamp)
	assert.Equal(t, CategoryCommerce, e.Category)
	assert.Contains(t, e.Device, "Firefox")
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	custom := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), Event{UserID: "u", Action: ActionSignIn, Timestamp: custom}))

	events, err := pub.List(context.Background(), "u")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, custom, events[0].Timestamp)
}

func TestPublisher_SyncStoreErrorPropagates(t *testing.T) {
	pub := NewPublisher(failingStore{})
	err := pub.Emit(context.Background(), Event{Action: ActionSignIn})
	require.Error(t, err)

	// Record swallows it.
	pub.Record(context.Background(), Event{Action: ActionSignIn})

	var nilPub *Publisher
	nilPub.Record(context.Background(), Event{Action: ActionSignIn})
}

func TestPublisher_ListRequiresLister(t *testing.T) {
	pub := NewPublisher(failingStore{})
	_, err := pub.List(context.Background(), "u")
	assert.Error(t, err)
}

func TestInMemoryStore_ListRecentNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	for _, a := range []Action{ActionSignIn, ActionOrderPlaced, ActionSignOut} {
		require.NoError(t, store.Append(context.Background(), Event{Action: a}))
	}
	recent, err := store.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ActionSignOut, recent[0].Action)
	assert.Equal(t, ActionOrderPlaced, recent[1].Action)
}

func TestActionCategory(t *testing.T) {
	assert.Equal(t, CategorySecurity, ActionSessionCleared.Category())
	assert.Equal(t, CategoryCommerce, ActionOrderPlaced.Category())
	assert.Equal(t, CategoryOperations, Action("something_else").Category())
}

func TestDeviceLabel(t *testing.T) {
	assert.Empty(t, DeviceLabel(""))
	label := DeviceLabel("Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0")
	assert.Contains(t, label, "Firefox on ")
	assert.Contains(t, label, "Linux")
	assert.Contains(t, DeviceLabel("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"), "bot")
}

type failingStore struct{}

func (failingStore) Append(context.Context, Event) error { return errors.New("disk full") }

type blockingStore struct {
	mu      sync.Mutex
	n       int
	release chan struct{}
}

func (b *blockingStore) Append(ctx context.Context, _ Event) error {
	b.mu.Lock()
	b.n++
	b.mu.Unlock()
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return nil
}

func (b *blockingStore) started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n > 0
}

func (b *blockingStore) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}
