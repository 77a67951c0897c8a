// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdstudio/backoffice/internal/core"
)

type fakeVerifier struct {
	claims *SessionClaims
	err    error
	seen   string
}

func (f *fakeVerifier) VerifySession(
	_ context.Context,
	token string,
) (*SessionClaims, error) {
	f.seen = token
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func claimsProbe(captured **SessionClaims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestExtractToken(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc123")
		assert.Equal(t, "abc123", ExtractToken(r))
	})

	t.Run("session cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
		assert.Equal(t, "cookie-token", ExtractToken(r))
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
		assert.Equal(t, "header-token", ExtractToken(r))
	})

	t.Run("malformed header yields nothing even with a cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
		assert.Empty(t, ExtractToken(r))
	})

	t.Run("no credentials", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, ExtractToken(r))
	})
}

func TestAuthenticator(t *testing.T) {
	t.Run("valid token populates claims", func(t *testing.T) {
		verifier := &fakeVerifier{
			claims: &SessionClaims{UserID: "uid-1", Role: "admin"},
		}

		var captured *SessionClaims
		handler := Authenticator(verifier)(claimsProbe(&captured))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "good-token", verifier.seen)
		require.NotNil(t, captured)
		assert.Equal(t, "uid-1", captured.UserID)
		assert.Equal(t, "admin", captured.Role)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		handler := Authenticator(&fakeVerifier{})(claimsProbe(new(*SessionClaims)))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		verifier := &fakeVerifier{err: core.ErrTokenExpired}
		handler := Authenticator(verifier)(claimsProbe(new(*SessionClaims)))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer stale")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("revoked token is unauthorized", func(t *testing.T) {
		verifier := &fakeVerifier{err: core.ErrTokenRevoked}
		handler := Authenticator(verifier)(claimsProbe(new(*SessionClaims)))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer revoked")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("bad token falls through anonymously", func(t *testing.T) {
		verifier := &fakeVerifier{err: core.ErrTokenInvalid}

		var captured *SessionClaims
		handler := OptionalAuth(verifier)(claimsProbe(&captured))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer junk")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, captured)
	})
}

func TestRequireRole(t *testing.T) {
	authenticated := func(role string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		claims := &SessionClaims{UserID: "uid-1", Role: role}
		return r.WithContext(withClaims(r.Context(), claims))
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("manager gate admits founder and admin only", func(t *testing.T) {
		for role, want := range map[string]int{
			"founder":  http.StatusOK,
			"admin":    http.StatusOK,
			"partner":  http.StatusForbidden,
			"employee": http.StatusForbidden,
		} {
			w := httptest.NewRecorder()
			RequireManager(ok).ServeHTTP(w, authenticated(role))
			assert.Equal(t, want, w.Code, "role %q", role)
		}
	})

	t.Run("staff gate admits every team role", func(t *testing.T) {
		for _, role := range []string{"founder", "admin", "partner", "employee"} {
			w := httptest.NewRecorder()
			RequireStaff(ok).ServeHTTP(w, authenticated(role))
			assert.Equal(t, http.StatusOK, w.Code, "role %q", role)
		}
	})

	t.Run("unauthenticated request is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireStaff(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown role is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireManager(ok).ServeHTTP(w, authenticated("intern"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
