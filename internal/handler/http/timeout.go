package http

import (
	"context"
	"net/http"
	"time"
)

// Timeout returns middleware that bounds the request context with d.
//
// The handler keeps running on the request goroutine and reports the
// deadline through its own error path, so a dispatch that runs out of time
// still archives its failed attempt and answers with the resulting error.
// A non-positive d disables the deadline.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
