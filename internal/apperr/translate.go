package apperr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jwhitfield/baseline-api/internal/domain"
	"github.com/jwhitfield/baseline-api/internal/service/auth"
	"github.com/jwhitfield/baseline-api/internal/store"
	"github.com/jwhitfield/baseline-api/internal/validation"
)

// From translates any failure into exactly one *Error. Already-typed errors
// pass through untouched; storage, token, and validation faults follow fixed
// translation rules; anything unmatched becomes Unclassified with its
// original message preserved (the terminal handler substitutes a generic
// phrase in production). Raw underlying faults never leave this function.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if e := fromValidation(err); e != nil {
		return e
	}
	if e := fromToken(err); e != nil {
		return e
	}
	if e := fromStore(err); e != nil {
		return e
	}
	if e := fromDomain(err); e != nil {
		return e
	}

	return Wrap(KindUnclassified, err.Error(), err)
}

// fromValidation maps gate failures onto ValidationFailed, carrying the
// per-field details through to the response.
func fromValidation(err error) *Error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return nil
	}
	return Wrap(KindValidationFailed, "Validation failed", err).WithDetails(verr.Details)
}

// fromToken maps token service sentinels onto AuthenticationFailed. Expiry
// and not-yet-valid get distinct messages; every other token fault, including
// a forged signature, reads "invalid token" so nothing distinguishes them.
func fromToken(err error) *Error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrExpiredRefreshToken):
		return Wrap(KindAuthenticationFailed, "token expired", err)
	case errors.Is(err, auth.ErrTokenNotYetValid), errors.Is(err, auth.ErrRefreshTokenNotYetValid):
		return Wrap(KindAuthenticationFailed, "token not active", err)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrMissingAuthHeader), errors.Is(err, auth.ErrMalformedAuthHeader):
		return Wrap(KindAuthenticationFailed, "invalid token", err)
	}
	return nil
}

// fromStore classifies storage faults. Store sentinels cover faults the
// platform layer already recognized; PgError codes cover everything that
// leaked through with its SQLSTATE intact. The final DatabaseFailure is the
// default for any storage fault without a more specific rule.
func fromStore(err error) *Error {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return Wrap(KindConflict, "a record with this information already exists", err)
	case errors.Is(err, store.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return Wrap(KindNotFound, "record not found", err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		return Wrap(KindConflict, "a record with this information already exists", err)
	case pgErr.Code == pgerrcode.ForeignKeyViolation:
		return Wrap(KindValidationFailed, "foreign key constraint failed", err)
	case pgerrcode.IsDataException(pgErr.Code),
		pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code):
		return Wrap(KindValidationFailed, "invalid data provided", err)
	case pgerrcode.IsConnectionException(pgErr.Code):
		return Wrap(KindDatabaseFailure, "database connection failed", err)
	case pgerrcode.IsInternalError(pgErr.Code):
		return Wrap(KindDatabaseFailure, "database engine error", err)
	default:
		return Wrap(KindDatabaseFailure, "database operation failed", err)
	}
}

// fromDomain maps entity validation errors onto ValidationFailed.
func fromDomain(err error) *Error {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrEmptyHashedPassword):
		return Wrap(KindValidationFailed, err.Error(), err)
	}
	return nil
}
