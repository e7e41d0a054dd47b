package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/platform/metrics"
	"storefront/pkg/requestcontext"
)

// ErrBufferFull is returned by Emit when the async buffer has no room. The
// event is dropped and counted.
var ErrBufferFull = errors.New("audit buffer full")

var errClosed = errors.New("audit publisher closed")

// Publisher captures structured audit events. Without a buffer it writes
// through to the store; with one, a single worker drains a bounded queue
// and Close waits for it.
type Publisher struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	buffer int
	inbox  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer makes Emit non-blocking with a queue of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.buffer = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.buffer > 0 {
		p.inbox = make(chan Event, p.buffer)
		p.done = make(chan struct{})
		w := NewWorker(store, p.inbox, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

// Emit stamps the event with an id, a timestamp and the request metadata
// carried by ctx, then hands it to the store.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	event = enrich(ctx, event)

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errClosed
	}

	if p.inbox == nil {
		if err := p.store.Append(ctx, event); err != nil {
			return fmt.Errorf("append audit event: %w", err)
		}
		return nil
	}

	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.metrics.IncAuditDropped()
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"request_id", event.RequestID,
		)
		return ErrBufferFull
	}
}

// Record emits and only logs failures. Services call it on paths where the
// trail must never fail the shopper's request.
func (p *Publisher) Record(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if err := p.Emit(ctx, event); err != nil && !errors.Is(err, ErrBufferFull) {
		p.logger.WarnContext(ctx, "failed to record audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

// List reads back a user's events when the store supports it.
func (p *Publisher) List(ctx context.Context, userID string) ([]Event, error) {
	lister, ok := p.store.(Lister)
	if !ok {
		return nil, fmt.Errorf("audit store %T cannot list events", p.store)
	}
	return lister.ListByUser(ctx, userID)
}

// Close stops accepting events and drains the buffer.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()

	if p.done != nil {
		<-p.done
	}
}

func enrich(ctx context.Context, event Event) Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.SessionID == "" {
		event.SessionID = requestcontext.SessionID(ctx)
	}
	if event.UserID == "" {
		event.UserID = requestcontext.UserID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.Device == "" {
		event.Device = DeviceLabel(requestcontext.UserAgent(ctx))
	}
	return event
}
