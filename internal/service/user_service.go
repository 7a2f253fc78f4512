package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwhitfield/baseline-api/internal/apperr"
	"github.com/jwhitfield/baseline-api/internal/domain"
	"github.com/jwhitfield/baseline-api/internal/platform/logger"
	"github.com/jwhitfield/baseline-api/internal/service/auth"
	"github.com/jwhitfield/baseline-api/internal/store"
	"github.com/jwhitfield/baseline-api/internal/validation"
)

// TokenPair is the access/refresh token pair issued on registration, login,
// and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserPage is one page of users plus the collection total.
type UserPage struct {
	Users []*domain.User
	Total int
	Page  int
	Limit int
}

// UserService implements registration, credential verification, token
// refresh, and user CRUD on top of the injected store and token service.
// It holds no mutable state of its own.
type UserService struct {
	users    store.UserStore
	tokens   auth.TokenService
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
}

// NewUserService creates a UserService with the given collaborators.
func NewUserService(
	users store.UserStore,
	tokens auth.TokenService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		verifier: verifier,
	}
}

// Register creates a new user and issues a token pair. A duplicate email
// yields a Conflict error and issues no tokens.
func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, TokenPair{}, apperr.Wrap(apperr.KindConflict, "User with this email already exists", err)
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	log.Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

// dummyPasswordHash is a bcrypt hash of a throwaway value. Login compares
// against it when the email is unknown so both failure branches pay the same
// hash cost and response timing does not reveal whether an account exists.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login verifies credentials and issues a fresh token pair. An unknown email
// and a wrong password are indistinguishable in the returned error and in
// the time taken to produce it.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = s.verifier.Compare(dummyPasswordHash, password)
			return nil, TokenPair{}, apperr.New(apperr.KindAuthenticationFailed, "Invalid email or password")
		}
		return nil, TokenPair{}, err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, TokenPair{}, apperr.New(apperr.KindAuthenticationFailed, "Invalid email or password")
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh verifies a refresh token and issues a new token pair. The user must
// still exist; tokens are stateless, so this lookup is the only liveness
// check a deleted account gets.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	identity, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return TokenPair{}, apperr.Wrap(apperr.KindAuthenticationFailed, "invalid token", err)
		}
		return TokenPair{}, err
	}

	return s.issueTokenPair(ctx, user)
}

// GetUser returns the user with the given ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser changes a user's email and/or password. Empty arguments leave
// the corresponding field untouched.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, email, password string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if password != "" {
		user.Password = password
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if password != "" {
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, apperr.Wrap(apperr.KindConflict, "User with this email already exists", err)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user permanently.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// ListUsers returns one page of users. The page size is clamped to
// [1, validation.MaxPageSize] and the page floor is 1, regardless of what the
// gate let through.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = validation.DefaultPage
	}
	if limit < 1 {
		limit = validation.DefaultPageSize
	}
	if limit > validation.MaxPageSize {
		limit = validation.MaxPageSize
	}

	users, total, err := s.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	return &UserPage{Users: users, Total: total, Page: page, Limit: limit}, nil
}

func (s *UserService) issueTokenPair(ctx context.Context, user *domain.User) (TokenPair, error) {
	identity := auth.Identity{UserID: user.ID, Email: user.Email}

	access, err := s.tokens.IssueAccessToken(ctx, identity)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefreshToken(ctx, identity)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
