package validation

import (
	"net/url"
	"strconv"
)

// Pagination defaults. The service layer additionally clamps Limit to
// MaxPageSize, so the gate only enforces positivity here.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination is the normalized, type-coerced form of the page/limit query
// parameters.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination coerces the "page" and "limit" query parameters from their
// string form. Missing parameters take their defaults (page 1, limit 10);
// present parameters must parse as positive integers. Both parameters are
// checked and every violation is reported, not just the first.
func ParsePagination(query url.Values) (Pagination, error) {
	p := Pagination{Page: DefaultPage, Limit: DefaultPageSize}
	details := newError()

	if raw := query.Get("page"); raw != "" {
		page, err := parsePositiveInt(raw)
		if err != nil {
			details.add("page", "must be a positive integer")
		} else {
			p.Page = page
		}
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := parsePositiveInt(raw)
		if err != nil {
			details.add("limit", "must be a positive integer")
		} else {
			p.Limit = limit
		}
	}

	if err := details.orNil(); err != nil {
		return Pagination{}, err
	}
	return p, nil
}

// parsePositiveInt parses a decimal string into an integer >= 1.
func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
