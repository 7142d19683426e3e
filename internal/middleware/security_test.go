package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, want := range expected {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("Expected %s: %s, got %s", header, want, got)
		}
	}

	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'self'") {
		t.Errorf("Expected CSP to restrict default-src, got %s", csp)
	}
	if !strings.Contains(csp, "connect-src 'self' ws: wss:") {
		t.Errorf("Expected CSP to allow websocket connects, got %s", csp)
	}

	if rec.Header().Get("Permissions-Policy") == "" {
		t.Error("Expected a Permissions-Policy header")
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected wrapped handler to run, got status %d", rec.Code)
	}
}
