package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jwhitfield/baseline-api/internal/config"
	"github.com/jwhitfield/baseline-api/internal/platform/logger"
)

// tokenKind bundles everything that distinguishes access tokens from refresh
// tokens: the signing secret, the lifetime, and the sentinel errors reported
// on verification failure. Both kinds are structurally identical on the wire.
type tokenKind struct {
	name           string
	secret         []byte
	lifetime       time.Duration
	errInvalid     error
	errExpired     error
	errNotYetValid error
}

// hmacTokenService implements TokenService using HMAC-SHA256 signing with
// independent secrets per token kind.
type hmacTokenService struct {
	access    tokenKind
	refresh   tokenKind
	issuer    string
	audience  string
	timeFunc  func() time.Time // Injectable for testing
	clockSkew time.Duration    // Allowed drift when validating time claims
}

// tokenClaims defines the structure of the JWT claims we use.
type tokenClaims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

var _ TokenService = (*hmacTokenService)(nil)

// Option configures optional behavior of the token service.
type Option func(*hmacTokenService)

// WithTimeFunc replaces the clock used for issuing and validating time
// claims. Tests use it to reach expiry boundaries without sleeping.
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *hmacTokenService) {
		s.timeFunc = fn
	}
}

// WithClockSkew sets the allowed drift when validating time claims.
func WithClockSkew(skew time.Duration) Option {
	return func(s *hmacTokenService) {
		s.clockSkew = skew
	}
}

// NewTokenService creates a TokenService using HMAC-SHA256 signing.
// The access and refresh secrets must each be at least 32 characters and must
// differ from one another; leaking one kind's secret must not allow minting
// the other kind.
func NewTokenService(cfg config.AuthConfig, opts ...Option) (TokenService, error) {
	if len(cfg.AccessTokenSecret) < 32 {
		return nil, fmt.Errorf("access token secret must be at least 32 characters")
	}
	if len(cfg.RefreshTokenSecret) < 32 {
		return nil, fmt.Errorf("refresh token secret must be at least 32 characters")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}

	svc := &hmacTokenService{
		access: tokenKind{
			name:           "access",
			secret:         []byte(cfg.AccessTokenSecret),
			lifetime:       time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
			errInvalid:     ErrInvalidToken,
			errExpired:     ErrExpiredToken,
			errNotYetValid: ErrTokenNotYetValid,
		},
		refresh: tokenKind{
			name:           "refresh",
			secret:         []byte(cfg.RefreshTokenSecret),
			lifetime:       time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
			errInvalid:     ErrInvalidRefreshToken,
			errExpired:     ErrExpiredRefreshToken,
			errNotYetValid: ErrRefreshTokenNotYetValid,
		},
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		timeFunc:  time.Now,
		clockSkew: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// IssueAccessToken creates a signed access token with identity claims.
func (s *hmacTokenService) IssueAccessToken(ctx context.Context, identity Identity) (string, error) {
	return s.issue(ctx, s.access, identity)
}

// IssueRefreshToken creates a signed refresh token with identity claims.
func (s *hmacTokenService) IssueRefreshToken(ctx context.Context, identity Identity) (string, error) {
	return s.issue(ctx, s.refresh, identity)
}

// VerifyAccessToken validates an access token and returns its identity.
func (s *hmacTokenService) VerifyAccessToken(ctx context.Context, tokenString string) (Identity, error) {
	return s.verify(ctx, s.access, tokenString)
}

// VerifyRefreshToken validates a refresh token and returns its identity.
func (s *hmacTokenService) VerifyRefreshToken(ctx context.Context, tokenString string) (Identity, error) {
	return s.verify(ctx, s.refresh, tokenString)
}

func (s *hmacTokenService) issue(ctx context.Context, kind tokenKind, identity Identity) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := tokenClaims{
		UserID: identity.UserID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(kind.lifetime)),
			ID:        uuid.New().String(), // Unique token ID
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(kind.secret)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"user_id", identity.UserID,
			"token_kind", kind.name,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign %s token: %w", kind.name, err)
	}

	return signedToken, nil
}

func (s *hmacTokenService) verify(ctx context.Context, kind tokenKind, tokenString string) (Identity, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return kind.secret, nil
		},
		parserOpts...)

	if err != nil {
		// Expiry and not-yet-valid keep their own sentinels for message
		// selection; everything else (bad signature, malformed structure,
		// wrong issuer or audience) collapses into the generic invalid
		// sentinel so the rejection reason is never disclosed.
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token verification failed: token expired", "token_kind", kind.name)
			return Identity{}, kind.errExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token verification failed: token not yet valid", "token_kind", kind.name)
			return Identity{}, kind.errNotYetValid
		default:
			log.Debug("token verification failed",
				"error", err,
				"token_kind", kind.name)
			return Identity{}, kind.errInvalid
		}
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		log.Debug("token verification failed: invalid claims", "token_kind", kind.name)
		return Identity{}, kind.errInvalid
	}

	if claims.UserID == uuid.Nil {
		log.Debug("token verification failed: missing user ID", "token_kind", kind.name)
		return Identity{}, kind.errInvalid
	}

	log.Debug("token verified",
		"user_id", claims.UserID,
		"token_kind", kind.name,
		"token_id", claims.ID,
		"expiry", claims.ExpiresAt.Time)

	return Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}
