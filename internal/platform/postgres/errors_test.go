package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jwhitfield/baseline-api/internal/store"
)

func TestMapUserError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, mapUserError(nil))
	})

	t.Run("no rows becomes user not found", func(t *testing.T) {
		t.Parallel()
		err := mapUserError(pgx.ErrNoRows)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation becomes email exists", func(t *testing.T) {
		t.Parallel()
		driverErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		err := mapUserError(fmt.Errorf("insert user: %w", driverErr))
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("other driver faults keep their PgError", func(t *testing.T) {
		t.Parallel()
		driverErr := &pgconn.PgError{Code: pgerrcode.ConnectionFailure}
		err := mapUserError(driverErr)

		var pgErr *pgconn.PgError
		assert.ErrorAs(t, err, &pgErr)
		assert.Equal(t, pgerrcode.ConnectionFailure, pgErr.Code)
	})

	t.Run("plain errors pass through unchanged", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("context canceled")
		assert.Equal(t, cause, mapUserError(cause))
	})
}
