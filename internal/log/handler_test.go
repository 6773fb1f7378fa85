package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	ctxlog "github.com/ErlanBelekov/bookstore/internal/log"
	"github.com/ErlanBelekov/bookstore/internal/reqctx"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(ctxlog.NewContextHandler(slog.NewTextHandler(buf, nil)))
}

func TestContextHandler_AddsRequestAndUserID(t *testing.T) {
	var buf bytes.Buffer
	ctx := reqctx.WithUserID(reqctx.WithRequestID(context.Background(), "req-1"), "user-1")

	newLogger(&buf).InfoContext(ctx, "hello")

	out := buf.String()
	if !strings.Contains(out, "request_id=req-1") || !strings.Contains(out, "user_id=user-1") {
		t.Errorf("log line %q missing context attrs", out)
	}
}

func TestContextHandler_NoValues(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf).InfoContext(context.Background(), "hello")

	if strings.Contains(buf.String(), "request_id") || strings.Contains(buf.String(), "user_id") {
		t.Errorf("log line %q has unexpected attrs", buf.String())
	}
}

func TestContextHandler_WithAttrsKeepsContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := reqctx.WithRequestID(context.Background(), "req-2")

	newLogger(&buf).With("component", "test").InfoContext(ctx, "hello")

	out := buf.String()
	if !strings.Contains(out, "component=test") || !strings.Contains(out, "request_id=req-2") {
		t.Errorf("log line %q", out)
	}
}
