package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/linkscout/scheduler-finder/api/internal/config"
)

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		if RequestIDFromContext(c) == "" {
			t.Fatalf("expected request id in context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id response header")
	}
}

func TestRequestIDPreservesCallerValue(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		if RequestIDFromContext(c) != "caller-id" {
			t.Fatalf("expected caller-provided id, got %s", RequestIDFromContext(c))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Logging(zap.NewNop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected next handler to be invoked")
	}
}

func TestValidateRateLimiterBlocksBurst(t *testing.T) {
	e := echo.New()
	mw := ValidateRateLimiter(config.RateLimitConfig{Requests: 1, Interval: time.Hour})

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath(path)
		if err := mw(next)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rec.Code
	}

	if code := do("/links/validate"); code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", code)
	}
	if code := do("/links/validate"); code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", code)
	}
	// other routes are never throttled by this limiter
	if code := do("/contacts"); code != http.StatusOK {
		t.Fatalf("unrelated route should pass, got %d", code)
	}
}

func TestValidateRateLimiterDisabledConfig(t *testing.T) {
	e := echo.New()
	mw := ValidateRateLimiter(config.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodPost, "/links/validate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/links/validate")

	if err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through when limiter disabled, got %d", rec.Code)
	}
}
