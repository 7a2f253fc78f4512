package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhitfield/baseline-api/internal/api/shared"
	"github.com/jwhitfield/baseline-api/internal/service/auth"
	"github.com/jwhitfield/baseline-api/internal/service/auth/authtest"
)

const (
	testAccessSecret  = "access-secret-that-is-long-enough-for-tests"
	testRefreshSecret = "refresh-secret-that-is-long-enough-for-tests"
)

func newTestTokenService(t *testing.T) auth.TokenService {
	t.Helper()
	return authtest.NewTokenService(t,
		testAccessSecret, testRefreshSecret,
		15*time.Minute, 24*time.Hour,
		time.Now)
}

// identityEcho records whether it ran and which identity it saw.
type identityEcho struct {
	called   bool
	identity auth.Identity
	hasID    bool
}

func (e *identityEcho) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.called = true
	e.identity, e.hasID = shared.IdentityFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func decodeErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorEnvelope {
	t.Helper()
	var envelope shared.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	tokens := newTestTokenService(t)
	identity := auth.Identity{UserID: uuid.New(), Email: "user@example.com"}

	validToken, err := tokens.IssueAccessToken(context.Background(), identity)
	require.NoError(t, err)
	refreshToken, err := tokens.IssueRefreshToken(context.Background(), identity)
	require.NoError(t, err)

	expiredService := authtest.NewTokenService(t,
		testAccessSecret, testRefreshSecret,
		15*time.Minute, 24*time.Hour,
		func() time.Time { return time.Now().Add(-time.Hour) })
	expiredToken, err := expiredService.IssueAccessToken(context.Background(), identity)
	require.NoError(t, err)

	t.Run("valid token attaches identity", func(t *testing.T) {
		t.Parallel()
		echo := &identityEcho{}
		handler := NewAuthMiddleware(tokens, false).RequireAuth(echo)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, echo.called)
		require.True(t, echo.hasID)
		assert.Equal(t, identity, echo.identity)
	})

	// Every rejection path must be indistinguishable: same status, same
	// message, no hint whether the header was missing, the signature forged,
	// or the token expired.
	failures := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Bearer"},
		{"extra whitespace", "Bearer  " + validToken},
		{"forged token", "Bearer abc.def.ghi"},
		{"expired token", "Bearer " + expiredToken},
		{"refresh token where access expected", "Bearer " + refreshToken},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			echo := &identityEcho{}
			handler := NewAuthMiddleware(tokens, false).RequireAuth(echo)

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, echo.called, "handler must not run")

			envelope := decodeErrorEnvelope(t, rec)
			assert.False(t, envelope.Success)
			assert.Equal(t, "Authentication failed", envelope.Error.Message)
			assert.Equal(t, http.StatusUnauthorized, envelope.Error.StatusCode)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()

	tokens := newTestTokenService(t)
	identity := auth.Identity{UserID: uuid.New(), Email: "user@example.com"}
	validToken, err := tokens.IssueAccessToken(context.Background(), identity)
	require.NoError(t, err)

	t.Run("valid token attaches identity", func(t *testing.T) {
		t.Parallel()
		echo := &identityEcho{}
		handler := NewAuthMiddleware(tokens, false).OptionalAuth(echo)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, echo.hasID)
		assert.Equal(t, identity, echo.identity)
	})

	t.Run("failures are swallowed and the request proceeds anonymous", func(t *testing.T) {
		t.Parallel()
		for _, header := range []string{"", "Bearer abc.def.ghi", "Basic creds"} {
			echo := &identityEcho{}
			handler := NewAuthMiddleware(tokens, false).OptionalAuth(echo)

			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, echo.called)
			assert.False(t, echo.hasID)
		}
	})
}

func TestRequireOwnership(t *testing.T) {
	t.Parallel()

	tokens := newTestTokenService(t)
	ownID := uuid.New()
	otherID := uuid.New()

	newRouter := func(echo *identityEcho) http.Handler {
		m := NewAuthMiddleware(tokens, false)
		r := chi.NewRouter()
		r.With(m.RequireAuth, m.RequireOwnership("id")).Get("/api/users/{id}", echo.ServeHTTP)
		return r
	}

	token, err := tokens.IssueAccessToken(context.Background(), auth.Identity{
		UserID: ownID,
		Email:  "owner@example.com",
	})
	require.NoError(t, err)

	t.Run("matching id passes", func(t *testing.T) {
		t.Parallel()
		echo := &identityEcho{}
		req := httptest.NewRequest(http.MethodGet, "/api/users/"+ownID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newRouter(echo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, echo.called)
	})

	t.Run("mismatched id is denied regardless of payload", func(t *testing.T) {
		t.Parallel()
		echo := &identityEcho{}
		req := httptest.NewRequest(http.MethodGet, "/api/users/"+otherID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newRouter(echo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, echo.called)

		envelope := decodeErrorEnvelope(t, rec)
		assert.Equal(t,
			"Access denied: You can only access your own resources",
			envelope.Error.Message)
	})

	t.Run("unparseable path id is denied", func(t *testing.T) {
		t.Parallel()
		echo := &identityEcho{}
		req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newRouter(echo).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, echo.called)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tokens := newTestTokenService(t)
	token, err := tokens.IssueAccessToken(context.Background(), auth.Identity{
		UserID: uuid.New(),
		Email:  "user@example.com",
	})
	require.NoError(t, err)

	m := NewAuthMiddleware(tokens, false)

	t.Run("authenticated request passes any role", func(t *testing.T) {
		t.Parallel()
		echo := &identityEcho{}
		handler := m.RequireAuth(m.RequireRole("admin")(echo))

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, echo.called)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		t.Parallel()
		echo := &identityEcho{}
		handler := m.RequireRole("admin")(echo)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, echo.called)
	})
}
