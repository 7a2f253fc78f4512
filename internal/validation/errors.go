package validation

import "sort"

// Error is a structured validation failure: a mapping from field path
// (dot-joined for nested fields) to the ordered list of human-readable
// violation messages for that field. Every failing field is collected, not
// just the first, so a client can fix all problems in one round-trip.
type Error struct {
	Details map[string][]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "validation failed"
}

// Fields returns the failing field paths in stable order, mainly for logs
// and tests.
func (e *Error) Fields() []string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// newError creates an empty validation error ready to collect violations.
func newError() *Error {
	return &Error{Details: make(map[string][]string)}
}

// add appends a violation message to the given field path.
func (e *Error) add(field, message string) {
	e.Details[field] = append(e.Details[field], message)
}

// orNil returns the error if it collected any violations, nil otherwise.
func (e *Error) orNil() error {
	if len(e.Details) == 0 {
		return nil
	}
	return e
}
