package shared

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jwhitfield/baseline-api/internal/apperr"
	"github.com/jwhitfield/baseline-api/internal/platform/logger"
)

// genericErrorMessage replaces the real message of non-operational (defect
// class) errors in production so internals never leak to clients.
const genericErrorMessage = "An unexpected error occurred"

// ErrorBody is the serialized form of an application error.
type ErrorBody struct {
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Timestamp  string              `json:"timestamp"`
	Path       string              `json:"path,omitempty"`
	Method     string              `json:"method,omitempty"`
	Details    map[string][]string `json:"details,omitempty"`
	Stack      string              `json:"stack,omitempty"`
}

// ErrorEnvelope is the uniform envelope for every failure response.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// SuccessEnvelope is the uniform envelope for every success response.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondSuccess writes a success envelope with the given status and payload.
func RespondSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, SuccessEnvelope{Success: true, Data: data})
}

// WriteError is the terminal error boundary: it translates any failure into
// exactly one application error, enriches it with request context, logs it
// once, and renders the uniform error envelope. Callers must return
// immediately after calling it so each request produces exactly one response.
//
// Logging severity follows the status code: 5xx at error level including the
// captured request body and headers for diagnosis, everything else at warning
// level with method/url/identity only. The stack trace field is emitted only
// outside production; the details field only for validation failures.
func WriteError(w http.ResponseWriter, r *http.Request, err error, production bool) {
	appErr := apperr.From(err).WithRequest(r.URL.Path, r.Method)

	message := appErr.Message
	if production && !appErr.Operational {
		message = genericErrorMessage
	}

	log := logger.FromContext(r.Context())
	attrs := []any{
		"kind", string(appErr.Kind),
		"status_code", appErr.StatusCode,
		"method", appErr.Method,
		"path", appErr.Path,
		"trace_id", GetTraceID(r.Context()),
	}
	if identity, ok := IdentityFromContext(r.Context()); ok {
		attrs = append(attrs, "user_id", identity.UserID)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		attrs = append(attrs,
			"error", appErr.Error(),
			"headers", redactedHeaders(r.Header),
			"body", string(CapturedBody(r.Context())),
		)
		log.Error("request failed", attrs...)
	} else {
		log.Warn("request failed", attrs...)
	}

	body := ErrorBody{
		Message:    message,
		StatusCode: appErr.StatusCode,
		Timestamp:  appErr.Timestamp.Format(time.RFC3339),
		Path:       appErr.Path,
		Method:     appErr.Method,
	}
	if appErr.Kind == apperr.KindValidationFailed {
		body.Details = appErr.Details
	}
	if !production {
		body.Stack = appErr.Stack
	}

	RespondWithJSON(w, r, appErr.StatusCode, ErrorEnvelope{Success: false, Error: body})
}

// redactedHeaders copies the request headers with credential material masked.
func redactedHeaders(h http.Header) map[string]string {
	redacted := make(map[string]string, len(h))
	for name := range h {
		switch name {
		case "Authorization", "Cookie":
			redacted[name] = "[REDACTED]"
		default:
			redacted[name] = h.Get(name)
		}
	}
	return redacted
}
