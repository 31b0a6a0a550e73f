// Package requestmeta stamps every request with an ID and an arrival time so
// downstream computation and logging share one clock and one correlation key.
package requestmeta

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"sedprefill/pkg/requestcontext"
)

const headerRequestID = "X-Request-ID"

// RequestID propagates the caller's request ID or mints one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime pins the request's arrival time. Downstream timestamps, such as
// the timeline assembly time and emitted event timestamps, read this clock so
// one request shares one instant.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
