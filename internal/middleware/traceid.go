package middleware

import (
	"context"
	"net/http"

	"github.com/rs/xid"
)

type contextKey string

const traceIDKey contextKey = "traceID"

// TraceID assigns a unique trace identifier to every inbound request.
//
// The ID is an xid: 20 URL-safe characters, sortable by creation time.
// It is stored in the request context, echoed back in the X-Trace-Id
// response header, and included in every error body and request log line —
// so a client-reported failure can be matched to the server logs for that
// exact request.
//
// This must be the FIRST middleware in the chain: everything downstream
// (logging, recovery, error responses) reads the ID from the context.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := xid.New().String()

		w.Header().Set("X-Trace-Id", id)
		ctx := context.WithValue(r.Context(), traceIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TraceIDFromContext returns the trace ID assigned by TraceID, or "" if the
// middleware didn't run (e.g. a handler invoked directly in a test).
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}
