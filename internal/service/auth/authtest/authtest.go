// Package authtest builds auth collaborators for tests in other packages.
package authtest

import (
	"testing"
	"time"

	"github.com/jwhitfield/baseline-api/internal/config"
	"github.com/jwhitfield/baseline-api/internal/service/auth"
)

// NewTokenService creates a token service with an injectable clock and zero
// clock skew so tests hit expiry boundaries exactly.
func NewTokenService(
	t testing.TB,
	accessSecret, refreshSecret string,
	accessLifetime, refreshLifetime time.Duration,
	timeFunc func() time.Time,
) auth.TokenService {
	t.Helper()

	svc, err := auth.NewTokenService(config.AuthConfig{
		AccessTokenSecret:           accessSecret,
		RefreshTokenSecret:          refreshSecret,
		TokenLifetimeMinutes:        int(accessLifetime / time.Minute),
		RefreshTokenLifetimeMinutes: int(refreshLifetime / time.Minute),
		Issuer:                      "baseline-api-test",
		Audience:                    "baseline-api-test-clients",
	}, auth.WithTimeFunc(timeFunc), auth.WithClockSkew(0))
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}
	return svc
}
