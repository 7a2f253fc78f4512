package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jwhitfield/baseline-api/internal/apperr"
)

// decodeJSON parses the request body into dst. A malformed or empty body is a
// client fault, reported as a validation failure before the gate even runs.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.KindValidationFailed, "Invalid request format", err).
			WithDetails(map[string][]string{"body": {"must be valid JSON"}})
	}
	return nil
}

// pathUUID extracts and parses a UUID path parameter.
func pathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindValidationFailed, "Validation failed", err).
			WithDetails(map[string][]string{paramName: {"must be a valid UUID"}})
	}
	return id, nil
}
