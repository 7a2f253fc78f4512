package auth

import "strings"

// bearerScheme is the only authorization scheme the server accepts.
const bearerScheme = "Bearer"

// ExtractBearerToken parses an Authorization header value of the exact form
// "Bearer <token>": a single space, exactly two whitespace-delimited parts,
// and a non-empty token. Returns ErrMissingAuthHeader for an empty header and
// ErrMalformedAuthHeader for every other deviation.
func ExtractBearerToken(headerValue string) (string, error) {
	if headerValue == "" {
		return "", ErrMissingAuthHeader
	}

	parts := strings.Split(headerValue, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", ErrMalformedAuthHeader
	}

	return parts[1], nil
}
