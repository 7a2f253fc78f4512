package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jwhitfield/baseline-api/internal/domain"
	"github.com/jwhitfield/baseline-api/internal/store"
)

// UserStore implements the store.UserStore interface using a PostgreSQL
// database as the storage backend. The connection pool is constructed and
// lifecycle-managed by the caller; the store never owns it.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a PostgreSQL implementation of store.UserStore.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, hashed_password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return mapUserError(fmt.Errorf("failed to create user: %w", err))
	}
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, created_at, updated_at
		 FROM users WHERE id = $1`, id))
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, created_at, updated_at
		 FROM users WHERE email = $1`, email))
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context, offset, limit int) ([]*domain.User, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, mapUserError(fmt.Errorf("failed to count users: %w", err))
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, email, hashed_password, created_at, updated_at
		 FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, mapUserError(fmt.Errorf("failed to list users: %w", err))
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, mapUserError(fmt.Errorf("failed to scan user row: %w", err))
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapUserError(fmt.Errorf("failed to read user rows: %w", err))
	}

	return users, total, nil
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET email = $2, hashed_password = $3, updated_at = $4
		 WHERE id = $1`,
		user.ID, user.Email, user.HashedPassword, user.UpdatedAt)
	if err != nil {
		return mapUserError(fmt.Errorf("failed to update user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// Delete implements store.UserStore.Delete.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapUserError(fmt.Errorf("failed to delete user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// rowScanner abstracts pgx.Row for single-row scans.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *UserStore) scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapUserError(fmt.Errorf("failed to scan user: %w", err))
	}
	return &u, nil
}
