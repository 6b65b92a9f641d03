package shield

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/nexus-a11y/idgen"
	"github.com/hazyhaar/nexus-a11y/kit"
)

var newTraceID = idgen.NanoID(8)

// TraceID reuses an incoming X-Trace-ID or mints one, then injects it into
// the context (kit.TraceIDKey), the response headers and a per-request
// logger stored under LoggerKey.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" || len(traceID) > 64 {
			traceID = newTraceID()
		}

		ctx := kit.WithTraceID(r.Context(), traceID)
		w.Header().Set("X-Trace-ID", traceID)

		logger := slog.Default().With(
			"trace_id", traceID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx = context.WithValue(ctx, LoggerKey, logger)
		logger.Debug("request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
