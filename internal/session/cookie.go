package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "storefront/pkg/domain-errors"
)

const cookieIssuer = "storefront"

// cookieClaims is the payload of the session cookie. It names the server-side
// record and nothing else.
type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies session cookie values (HS256 JWTs).
type CookieCodec struct {
	signingKey []byte
	ttl        time.Duration
}

func NewCookieCodec(signingKey string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{signingKey: []byte(signingKey), ttl: ttl}
}

// Encode returns the signed cookie value for sessionID issued at now.
func (c *CookieCodec) Encode(sessionID string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cookieIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(c.signingKey)
}

// Decode verifies value and returns the session id it names.
func (c *CookieCodec) Decode(value string, now time.Time) (string, error) {
	parsed, err := jwt.ParseWithClaims(value, &cookieClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return c.signingKey, nil
	},
		jwt.WithIssuer(cookieIssuer),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "session cookie has expired")
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid session cookie")
	}
	claims, ok := parsed.Claims.(*cookieClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid session cookie")
	}
	return claims.SessionID, nil
}
