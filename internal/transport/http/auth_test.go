package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("empty secret disables the check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		rec := httptest.NewRecorder()
		RequireAdmin("", next).ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected passthrough, got %d", rec.Code)
		}
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		rec := httptest.NewRecorder()
		RequireAdmin(secret, next).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"unauthorized"`) {
			t.Fatalf("expected unauthorized code, got %s", rec.Body.String())
		}
	})

	t.Run("valid admin token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "admin"))
		rec := httptest.NewRecorder()
		RequireAdmin(secret, next).ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("non-admin role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "user"))
		rec := httptest.NewRecorder()
		RequireAdmin(secret, next).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "admin"))
		rec := httptest.NewRecorder()
		RequireAdmin(secret, next).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		RequireAdmin(secret, next).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
