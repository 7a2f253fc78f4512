package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/jwhitfield/baseline-api/internal/api/shared"
	"github.com/jwhitfield/baseline-api/internal/platform/logger"
)

// maxCapturedBody caps how much of a request body is buffered for 5xx
// diagnostics.
const maxCapturedBody = 64 << 10

// Trace adds a trace ID and a trace-scoped logger to the request context, and
// buffers the request body so the error boundary can include it when logging
// server faults. Apply it early in the middleware chain.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			if r.Body != nil && r.Body != http.NoBody {
				captured, err := io.ReadAll(io.LimitReader(r.Body, maxCapturedBody))
				if err == nil {
					ctx = shared.WithCapturedBody(ctx, captured)
					r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(captured), r.Body))
				}
			}

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
