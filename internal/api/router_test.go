package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMetricsRouterHealth(t *testing.T) {
	router := NewMetricsRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 from /health, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 from /metrics, got %d", rec.Code)
	}
}

type fakeWaitlist struct {
	emails []string
	err    error
}

func (f *fakeWaitlist) Signup(_ context.Context, email string) error {
	if f.err != nil {
		return f.err
	}
	f.emails = append(f.emails, email)
	return nil
}

func TestWaitlistSignup(t *testing.T) {
	wl := &fakeWaitlist{}
	logger := discardAPILogger()
	h := NewWaitlistHandler(wl, logger)

	t.Run("accepted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Signup(rec, jsonRequest(t, "POST", "/api/v1/waitlist", map[string]string{"email": "pat@example.com"}))
		if rec.Code != http.StatusAccepted {
			t.Errorf("expected 202, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(wl.emails) != 1 || wl.emails[0] != "pat@example.com" {
			t.Errorf("expected email forwarded, got %v", wl.emails)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Signup(rec, jsonRequest(t, "POST", "/api/v1/waitlist", map[string]string{"email": "not-an-email"}))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("remote failure", func(t *testing.T) {
		failing := NewWaitlistHandler(&fakeWaitlist{err: errors.New("boom")}, logger)
		rec := httptest.NewRecorder()
		failing.Signup(rec, jsonRequest(t, "POST", "/api/v1/waitlist", map[string]string{"email": "pat@example.com"}))
		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("unconfigured", func(t *testing.T) {
		unset := NewWaitlistHandler(nil, logger)
		rec := httptest.NewRecorder()
		unset.Signup(rec, jsonRequest(t, "POST", "/api/v1/waitlist", map[string]string{"email": "pat@example.com"}))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", rec.Code)
		}
	})
}

func TestStatsRequiresAdminToken(t *testing.T) {
	s := newMockStore()
	logger := discardAPILogger()
	cfg := testConfig()
	cfg.Server.AdminToken = "secret"
	router := NewRouter(s, nil, nil, nil, cfg, logger)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/stats", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}
