package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jwhitfield/baseline-api/internal/store"
)

// mapUserError wraps a driver fault with the matching store sentinel so
// callers above the platform layer can classify it without knowing the
// driver. Faults without a sentinel keep their PgError intact; the error
// taxonomy classifies those by SQLSTATE.
func mapUserError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	}

	return err
}
