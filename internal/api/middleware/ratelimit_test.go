package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func limitRequest() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "192.0.2.1:4242"
	return e.NewContext(req, httptest.NewRecorder())
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &fakeLimiter{allow: true}
	c := limitRequest()

	called := false
	err := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "192.0.2.1" {
		t.Fatalf("expected client IP as key, got %v", limiter.keys)
	}
}

func TestRateLimit_Throttled(t *testing.T) {
	limiter := &fakeLimiter{allow: false}
	c := limitRequest()

	err := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("next should not be called")
		return nil
	})(c)

	if httpStatus(t, err) != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}

func TestRateLimit_BackendErrorLetsThrough(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis down")}
	c := limitRequest()

	called := false
	err := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("request should pass when the limiter backend fails")
	}
}
