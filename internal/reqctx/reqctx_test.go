package reqctx_test

import (
	"context"
	"testing"

	"github.com/ErlanBelekov/bookstore/internal/reqctx"
)

func TestRequestID_RoundTrip(t *testing.T) {
	id := reqctx.NewRequestID()
	ctx := reqctx.WithRequestID(context.Background(), id)

	if got := reqctx.RequestID(ctx); got != id {
		t.Errorf("RequestID = %q, want %q", got, id)
	}
}

func TestNewRequestID_Unique(t *testing.T) {
	if reqctx.NewRequestID() == reqctx.NewRequestID() {
		t.Error("two request IDs are equal")
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()
	if reqctx.RequestID(ctx) != "" || reqctx.UserID(ctx) != "" {
		t.Error("empty context returned non-empty values")
	}
}

func TestUserID_RoundTrip(t *testing.T) {
	ctx := reqctx.WithUserID(context.Background(), "user-1")

	if got := reqctx.UserID(ctx); got != "user-1" {
		t.Errorf("UserID = %q, want user-1", got)
	}
}
