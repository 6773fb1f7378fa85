package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

type claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 bearer tokens carrying a user ID.
// It holds no state besides the signing key, which is fixed for its lifetime.
type Manager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now, used by tests to move past expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

func NewManager(key []byte, opts ...Option) *Manager {
	m := &Manager{key: key, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue returns a signed token for userID that expires ttl after now.
func (m *Manager) Issue(userID string) (string, error) {
	now := m.now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns the embedded user ID.
// A token is rejected once now reaches its expiration instant.
func (m *Manager) Verify(raw string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", domain.ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		default:
			return "", domain.ErrTokenInvalid
		}
	}

	if c.UserID == "" {
		return "", domain.ErrTokenInvalid
	}
	return c.UserID, nil
}
