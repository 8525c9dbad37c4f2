package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/sakif/todo-api/internal/model"
)

// Recover returns a middleware that catches panics anywhere below it in the
// chain and turns them into a 500 response in the API's shared error shape.
//
// This is the LAST-RESORT safety net, not a control-flow mechanism: expected
// failures (validation, not-found, bad credentials) travel as apperror values
// and never reach this code. Only genuine bugs panic.
//
// The panic value and stack are logged server-side in full; the client gets
// a fixed, generic detail string plus the trace ID for correlation. Internal
// details are never leaked.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Re-raise http.ErrAbortHandler — net/http uses it to
				// abort a response deliberately.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				traceID := TraceIDFromContext(r.Context())
				logger.Error("panic recovered",
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("traceId", traceID),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(model.ErrorResponse{
					Type:    model.ProblemTypeInternal,
					Title:   "Internal server error",
					Status:  http.StatusInternalServerError,
					Detail:  "an unexpected error occurred, please try again later",
					TraceID: traceID,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
