package session

import (
	"context"
	"time"
)

// Store persists session records. Get returns sentinel.ErrNotFound for
// missing or expired records.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Touch(ctx context.Context, id string, verifiedAt time.Time) error
}
