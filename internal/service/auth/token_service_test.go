package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhitfield/baseline-api/internal/config"
)

const (
	testAccessSecret  = "access-secret-that-is-long-enough-for-tests"
	testRefreshSecret = "refresh-secret-that-is-long-enough-for-tests"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testAuthConfig(accessSecret, refreshSecret string, accessLifetime, refreshLifetime time.Duration) config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:           accessSecret,
		RefreshTokenSecret:          refreshSecret,
		TokenLifetimeMinutes:        int(accessLifetime / time.Minute),
		RefreshTokenLifetimeMinutes: int(refreshLifetime / time.Minute),
		Issuer:                      "baseline-api-test",
		Audience:                    "baseline-api-test-clients",
	}
}

func newTokenService(t *testing.T,
	accessSecret, refreshSecret string,
	accessLifetime, refreshLifetime time.Duration,
	timeFunc func() time.Time,
) TokenService {
	t.Helper()
	svc, err := NewTokenService(
		testAuthConfig(accessSecret, refreshSecret, accessLifetime, refreshLifetime),
		WithTimeFunc(timeFunc), WithClockSkew(0))
	require.NoError(t, err)
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	identity := Identity{UserID: uuid.New(), Email: "user@example.com"}
	svc := newTokenService(t, testAccessSecret, testRefreshSecret,
		15*time.Minute, 7*24*time.Hour,
		fixedClock(fixedTime))

	t.Run("access token round-trips the identity", func(t *testing.T) {
		t.Parallel()
		token, err := svc.IssueAccessToken(context.Background(), identity)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := svc.VerifyAccessToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, identity, got)
	})

	t.Run("refresh token round-trips the identity", func(t *testing.T) {
		t.Parallel()
		token, err := svc.IssueRefreshToken(context.Background(), identity)
		require.NoError(t, err)

		got, err := svc.VerifyRefreshToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, identity, got)
	})
}

func TestSecretIsolation(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	identity := Identity{UserID: uuid.New(), Email: "user@example.com"}
	svc := newTokenService(t, testAccessSecret, testRefreshSecret,
		15*time.Minute, 7*24*time.Hour,
		fixedClock(fixedTime))

	accessToken, err := svc.IssueAccessToken(context.Background(), identity)
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefreshToken(context.Background(), identity)
	require.NoError(t, err)

	t.Run("access token fails refresh verification", func(t *testing.T) {
		t.Parallel()
		_, err := svc.VerifyRefreshToken(context.Background(), accessToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("refresh token fails access verification", func(t *testing.T) {
		t.Parallel()
		_, err := svc.VerifyAccessToken(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifyAccessToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 15 * time.Minute
	identity := Identity{UserID: uuid.New(), Email: "user@example.com"}

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (TokenService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (TokenService, string) {
				svc := newTokenService(t, testAccessSecret, testRefreshSecret,
					lifetime, 24*time.Hour, fixedClock(fixedTime))
				token, err := svc.IssueAccessToken(context.Background(), identity)
				require.NoError(t, err)
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (TokenService, string) {
				genSvc := newTokenService(t, testAccessSecret, testRefreshSecret,
					lifetime, 24*time.Hour, fixedClock(fixedTime))
				token, err := genSvc.IssueAccessToken(context.Background(), identity)
				require.NoError(t, err)

				valSvc := newTokenService(t, testAccessSecret, testRefreshSecret,
					lifetime, 24*time.Hour, fixedClock(fixedTime.Add(lifetime+time.Hour)))
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "forged signature",
			setupFunc: func(t *testing.T) (TokenService, string) {
				forger := newTokenService(t,
					"wrong-access-secret-that-is-long-enough",
					"wrong-refresh-secret-that-is-long-enough",
					lifetime, 24*time.Hour, fixedClock(fixedTime))
				token, err := forger.IssueAccessToken(context.Background(), identity)
				require.NoError(t, err)

				svc := newTokenService(t, testAccessSecret, testRefreshSecret,
					lifetime, 24*time.Hour, fixedClock(fixedTime))
				return svc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (TokenService, string) {
				svc := newTokenService(t, testAccessSecret, testRefreshSecret,
					lifetime, 24*time.Hour, fixedClock(fixedTime))
				return svc, "not.a.token"
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc(t)
			got, err := svc.VerifyAccessToken(context.Background(), token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, identity, got)
		})
	}
}

func TestNewTokenServiceRejectsWeakConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
	}{
		{"short access secret", "short", testRefreshSecret},
		{"short refresh secret", testAccessSecret, "short"},
		{"identical secrets", testAccessSecret, testAccessSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTokenService(testAuthConfig(
				tt.accessSecret, tt.refreshSecret, time.Minute, time.Hour))
			assert.Error(t, err)
		})
	}
}
