package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/jwhitfield/baseline-api/internal/service/auth"
)

// ContextKey is a private key type for request-scoped context values.
type ContextKey string

const (
	// IdentityContextKey carries the authenticated identity attached by the
	// authentication middleware. The identity is immutable; stages read it,
	// they never replace it.
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey carries the per-request trace ID used for log and error
	// correlation.
	TraceIDKey ContextKey = "traceID"

	// BodyContextKey carries the buffered request body captured by the trace
	// middleware, used only for 5xx diagnostics.
	BodyContextKey ContextKey = "capturedBody"

	// TraceIDLength is the number of random bytes in a trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// IdentityFromContext retrieves the authenticated identity, reporting whether
// one was attached.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(auth.Identity)
	return identity, ok
}

// WithCapturedBody stores the buffered request body for error diagnostics.
func WithCapturedBody(ctx context.Context, body []byte) context.Context {
	return context.WithValue(ctx, BodyContextKey, body)
}

// CapturedBody returns the buffered request body, if any stage captured it.
func CapturedBody(ctx context.Context) []byte {
	body, _ := ctx.Value(BodyContextKey).([]byte)
	return body
}

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" if absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random 32-character hex trace ID. If crypto/rand
// fails it falls back to a time-derived value rather than a static one.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], uint64(time.Now().Unix()))
	}
	return hex.EncodeToString(b)
}
