// Package apperr defines the application's closed error taxonomy and the
// translation rules that convert storage, token, and validation faults into
// it. Every failure that reaches the response boundary is represented as
// exactly one *apperr.Error before serialization; raw driver or library
// errors are never passed through.
package apperr
