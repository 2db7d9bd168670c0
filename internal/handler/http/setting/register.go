// Package setting serves the global settings of each handler type.
package setting

import (
	"net/http"

	settingUC "notify-svc/internal/usecase/setting"
)

// Register registers the global settings routes with the given mux.
func Register(mux *http.ServeMux, svc *settingUC.Service) {
	mux.Handle("GET /settings/{type}", GetHandler{svc})
	mux.Handle("PUT /settings/{type}", PutHandler{svc})
}
