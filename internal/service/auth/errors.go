package auth

import "errors"

// Common authentication service errors.
//
// Verification failures deliberately collapse into a small sentinel set: a
// forged signature, a malformed token, and a wrong issuer/audience are all
// reported as ErrInvalidToken so responses cannot be used as an oracle for
// why a token was rejected. Expiry and not-yet-valid keep their own sentinels
// because the error taxonomy renders distinct messages for them, but they map
// to the same response kind.
var (
	// ErrInvalidToken indicates the access token is malformed, carries a bad
	// signature, or names the wrong issuer/audience.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the access token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the access token is not yet valid.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrInvalidRefreshToken is the refresh-side variant of ErrInvalidToken.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired.
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrRefreshTokenNotYetValid indicates the refresh token is not yet valid.
	ErrRefreshTokenNotYetValid = errors.New("refresh token not yet valid")

	// ErrMissingAuthHeader indicates no Authorization header was provided.
	ErrMissingAuthHeader = errors.New("authorization header is missing")

	// ErrMalformedAuthHeader indicates the Authorization header is not of the
	// exact form "Bearer <token>".
	ErrMalformedAuthHeader = errors.New("authorization header is malformed")
)
