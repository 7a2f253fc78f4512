// Package postgres implements the store interfaces on top of pgx. Driver
// faults are wrapped with store sentinels where a sentinel exists and kept
// classifiable by SQLSTATE otherwise; nothing above this layer touches the
// driver directly.
package postgres
