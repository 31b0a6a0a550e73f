package testutil

import (
	"net/http"
	"time"

	"sedprefill/pkg/requestcontext"
)

// WithRequestMeta stamps the request with an ID and a fixed clock, simulating
// what the request middleware would do.
func WithRequestMeta(req *http.Request, requestID string, at time.Time) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	ctx = requestcontext.WithTime(ctx, at)
	return req.WithContext(ctx)
}

// WithSubject adds an authenticated subject, simulating the auth middleware.
func WithSubject(req *http.Request, subject string) *http.Request {
	return req.WithContext(requestcontext.WithSubject(req.Context(), subject))
}
