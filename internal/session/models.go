package session

import (
	"encoding/hex"
	"log/slog"
	"time"

	"golang.org/x/crypto/blake2b"
)

// UserSummary is the shopper identity returned by upstream sign-in.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the server-side record referenced by the session cookie. Token
// is the upstream bearer credential and never leaves the server.
type Session struct {
	ID         string      `json:"id"`
	Token      string      `json:"token"`
	User       UserSummary `json:"user"`
	CreatedAt  time.Time   `json:"created_at"`
	ExpiresAt  time.Time   `json:"expires_at"`
	VerifiedAt time.Time   `json:"verified_at"`
}

// LogValue keeps the credential out of structured logs.
func (s Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", s.ID),
		slog.String("user_id", s.User.ID),
		slog.String("credential", Fingerprint(s.Token)),
	)
}

// IsExpired reports whether the record is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// NeedsVerification reports whether the credential was last verified more
// than interval ago.
func (s *Session) NeedsVerification(now time.Time, interval time.Duration) bool {
	return s.VerifiedAt.IsZero() || now.Sub(s.VerifiedAt) >= interval
}

// Change is delivered to subscribers when a session is written or cleared.
type Change struct {
	SessionID string
	Cleared   bool
	Reason    string
}

// Clear reasons.
const (
	ReasonSignOut      = "sign_out"
	ReasonUnauthorized = "unauthorized"
	ReasonReplaced     = "replaced"
)

// Fingerprint is a short, non-reversible label for a credential, safe to log.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
