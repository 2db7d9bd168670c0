// Package handler serves the topic to handler bindings.
package handler

import (
	"net/http"

	hdlUC "notify-svc/internal/usecase/handler"
)

// Register registers the handler routes with the given mux.
func Register(mux *http.ServeMux, svc *hdlUC.Service) {
	mux.Handle("GET /handlers/{type}", ListHandler{svc})
	mux.Handle("POST /handlers/{type}", CreateHandler{svc})
	mux.Handle("GET /handlers/{type}/{topic}", GetHandler{svc})
	mux.Handle("PUT /handlers/{type}/{topic}", UpdateHandler{svc})
}
