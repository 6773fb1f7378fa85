package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ErlanBelekov/bookstore/internal/reqctx"
	"github.com/ErlanBelekov/bookstore/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func newHeaderEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.CORS(), middleware.Security(true))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, reqctx.RequestID(c.Request.Context()))
	})
	return r
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	w := httptest.NewRecorder()
	newHeaderEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("X-Request-ID header not set")
	}
	if w.Body.String() != id {
		t.Errorf("context id %q != header id %q", w.Body.String(), id)
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	newHeaderEngine().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}
}

func TestRequestID_ReplacesOversized(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 500))
	newHeaderEngine().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); len(got) > 128 || got == "" {
		t.Errorf("X-Request-ID = %q, want a fresh id", got)
	}
}

func TestCORS_PreflightReturns204(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://shop.example")
	newHeaderEngine().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestSecurity_SetsHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	newHeaderEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestSecurity_HSTSOnlyWhenEnabled(t *testing.T) {
	for _, hsts := range []bool{true, false} {
		r := gin.New()
		r.Use(middleware.Security(hsts))
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		got := w.Header().Get("Strict-Transport-Security") != ""
		if got != hsts {
			t.Errorf("hsts=%v: Strict-Transport-Security present = %v", hsts, got)
		}
		if w.Header().Get("Cache-Control") != "no-store" {
			t.Errorf("hsts=%v: Cache-Control = %q", hsts, w.Header().Get("Cache-Control"))
		}
	}
}
