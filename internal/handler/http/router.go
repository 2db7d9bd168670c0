package http

import (
	"net/http"

	"notify-svc/internal/handler/http/respond"
)

// Router wraps mux so unknown paths and unsupported methods are answered
// with the NOT_FOUND JSON error instead of the plain text defaults.
func Router(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern == "" {
			respond.NotFound(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
}
