package model

import "github.com/sakif/todo-api/internal/apperror"

// Problem-type URIs classifying error categories, RFC 7807-style.
// These point at the HTTP spec sections defining each status code and are
// stable identifiers clients can switch on.
const (
	ProblemTypeBadRequest   = "https://tools.ietf.org/html/rfc7231#section-6.5.1"
	ProblemTypeUnauthorized = "https://tools.ietf.org/html/rfc7235#section-3.1"
	ProblemTypeNotFound     = "https://tools.ietf.org/html/rfc7231#section-6.5.4"
	ProblemTypeInternal     = "https://tools.ietf.org/html/rfc7231#section-6.6.1"
)

// ErrorResponse is the single error body shape returned by every endpoint
// and middleware in the API, serialized with lower-camel-case field names.
//
// Errors is only present for validation failures (a field → messages map);
// TraceID is always present and matches the X-Trace-Id response header, so
// a client error report can be correlated with server logs.
type ErrorResponse struct {
	Type    string               `json:"type"`
	Title   string               `json:"title"`
	Status  int                  `json:"status"`
	Detail  string               `json:"detail"`
	Errors  apperror.FieldErrors `json:"errors,omitempty"`
	TraceID string               `json:"traceId"`
}
