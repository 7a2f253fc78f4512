package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jwhitfield/baseline-api/internal/apperr"
	"github.com/jwhitfield/baseline-api/internal/api/shared"
	"github.com/jwhitfield/baseline-api/internal/platform/logger"
	"github.com/jwhitfield/baseline-api/internal/service/auth"
)

// ownershipDeniedMessage is the fixed response for an ownership mismatch.
const ownershipDeniedMessage = "Access denied: You can only access your own resources"

// AuthMiddleware authenticates requests from their Authorization header and
// attaches the verified identity to the request context.
type AuthMiddleware struct {
	tokens     auth.TokenService
	production bool
}

// NewAuthMiddleware creates an AuthMiddleware with the given token service.
func NewAuthMiddleware(tokens auth.TokenService, production bool) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, production: production}
}

// RequireAuth is the strict mode: extract a bearer token, verify it as an
// access token, and attach the identity. Any failure at either step short
// circuits with one generic 401; the response never distinguishes a missing
// header from a bad signature from an expired token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.authenticate(r)
		if err != nil {
			shared.WriteError(w, r,
				apperr.Wrap(apperr.KindAuthenticationFailed, "Authentication failed", err),
				m.production)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithIdentity(r.Context(), identity)))
	})
}

// OptionalAuth runs the same steps as RequireAuth but swallows every failure:
// the request proceeds without an identity. Used by public endpoints that
// personalize their response when a valid token happens to be present.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.authenticate(r)
		if err != nil {
			logger.FromContext(r.Context()).Debug("optional auth skipped", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithIdentity(r.Context(), identity)))
	})
}

// RequireOwnership compares the authenticated identity against the user ID in
// the named path parameter and rejects mismatches with 403, regardless of
// payload validity. It must run after RequireAuth.
func (m *AuthMiddleware) RequireOwnership(paramName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := shared.IdentityFromContext(r.Context())
			if !ok {
				shared.WriteError(w, r,
					apperr.New(apperr.KindAuthenticationFailed, "Authentication failed"),
					m.production)
				return
			}

			pathID, err := uuid.Parse(chi.URLParam(r, paramName))
			if err != nil || pathID != identity.UserID {
				shared.WriteError(w, r,
					apperr.New(apperr.KindAccessDenied, ownershipDeniedMessage),
					m.production)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole is an extension point for role-based access control. The
// current model has a single implicit role, so it only asserts that an
// authenticated identity is present and enforces nothing further.
func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := shared.IdentityFromContext(r.Context()); !ok {
				shared.WriteError(w, r,
					apperr.New(apperr.KindAuthenticationFailed, "Authentication failed"),
					m.production)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) authenticate(r *http.Request) (auth.Identity, error) {
	token, err := auth.ExtractBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return auth.Identity{}, err
	}
	return m.tokens.VerifyAccessToken(r.Context(), token)
}
