package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/bookstore/internal/domain"
	"github.com/ErlanBelekov/bookstore/internal/token"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "token-test-secret-at-least-32-chars!!"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newManager(clock *fakeClock) *token.Manager {
	return token.NewManager([]byte(testKey), token.WithClock(clock.Now))
}

func TestIssueVerify_ReturnsUserID(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newManager(clock)

	tok, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != "user-1" {
		t.Errorf("user id = %q, want user-1", got)
	}
}

func TestVerify_ValidJustBeforeExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newManager(clock)

	tok, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.t = clock.t.Add(token.DefaultTTL - time.Second)
	if _, err := m.Verify(tok); err != nil {
		t.Errorf("verify one second before expiry: %v", err)
	}
}

func TestVerify_ExpiredAtExpirationInstant(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newManager(clock)

	tok, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, d := range []time.Duration{token.DefaultTTL, token.DefaultTTL + time.Hour} {
		clock.t = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).Add(d)
		if _, err := m.Verify(tok); !errors.Is(err, domain.ErrTokenExpired) {
			t.Errorf("after %v: want ErrTokenExpired, got %v", d, err)
		}
	}
}

func TestVerify_Garbage_ReturnsMalformed(t *testing.T) {
	m := newManager(&fakeClock{t: time.Now()})

	for _, raw := range []string{"", "not.a.jwt", "abc"} {
		if _, err := m.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Errorf("Verify(%q): want ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestVerify_WrongKey_ReturnsSignatureError(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	other := token.NewManager([]byte("a-different-key-that-is-32-chars!!"), token.WithClock(clock.Now))

	tok, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := newManager(clock).Verify(tok); !errors.Is(err, domain.ErrTokenSignature) {
		t.Errorf("want ErrTokenSignature, got %v", err)
	}
}

func TestVerify_UnsignedToken_Rejected(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := newManager(&fakeClock{t: time.Now()}).Verify(tok); !errors.Is(err, domain.ErrTokenSignature) {
		t.Errorf("want ErrTokenSignature, got %v", err)
	}
}

func TestVerify_MissingUserID_ReturnsInvalid(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := newManager(&fakeClock{t: time.Now()}).Verify(tok); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_MissingExpiry_ReturnsInvalid(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
	}).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := newManager(&fakeClock{t: time.Now()}).Verify(tok); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}
