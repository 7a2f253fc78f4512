package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated principal produced by successful token
// verification. It is immutable once created and never persisted; middleware
// attaches it to the request context for the duration of request handling.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenService issues and verifies signed, time-bound access and refresh
// tokens. Tokens are stateless: verification is a pure function of the token,
// the per-kind secret, and the current clock. There is no revocation list;
// natural expiry is a token's only destruction.
type TokenService interface {
	// IssueAccessToken signs a short-lived access token carrying the
	// identity's user ID and email plus standard claims (issuer, audience,
	// issued-at, expiry). Never fails for a well-formed identity.
	IssueAccessToken(ctx context.Context, identity Identity) (string, error)

	// IssueRefreshToken signs a long-lived refresh token of the same shape,
	// using the independent refresh secret.
	IssueRefreshToken(ctx context.Context, identity Identity) (string, error)

	// VerifyAccessToken checks signature, issuer, audience, and expiry
	// against the access secret and returns the embedded identity.
	// Fails with ErrInvalidToken (or the expiry/not-yet-valid sentinels)
	// on any violation. A refresh token never verifies here because it is
	// signed with a different secret.
	VerifyAccessToken(ctx context.Context, tokenString string) (Identity, error)

	// VerifyRefreshToken is the symmetric operation for refresh tokens,
	// failing with the refresh-specific sentinels.
	VerifyRefreshToken(ctx context.Context, tokenString string) (Identity, error)
}
