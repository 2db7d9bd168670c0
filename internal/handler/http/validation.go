package http

import (
	"net/http"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/handler/http/respond"
)

// maxPathLength bounds the URI path; topics travel in the path.
const maxPathLength = 2048

// InputValidation returns middleware that limits request inputs: the URI
// path to 2KB and the body to maxBodyBytes. Oversized bodies surface as
// BadRequest when the handler decodes them.
func InputValidation(maxBodyBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				respond.Error(w, r, entity.BadRequest("URI too long"))
				return
			}

			if r.ContentLength > maxBodyBytes {
				respond.Error(w, r, entity.BadRequest("Request body exceeds %d bytes", maxBodyBytes))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

			next.ServeHTTP(w, r)
		})
	}
}
