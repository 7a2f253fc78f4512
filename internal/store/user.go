package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwhitfield/baseline-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns a page of users ordered by creation time, newest first,
	// along with the total number of users. Offset/limit arithmetic is the
	// caller's concern; the store executes it as given.
	List(ctx context.Context, offset, limit int) ([]*domain.User, int, error)

	// Update modifies an existing user's details. The caller provides a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// when updating to an email that is already in use.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
