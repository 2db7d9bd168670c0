package setting

import (
	"net/http"

	"notify-svc/internal/handler/http/pathutil"
	"notify-svc/internal/handler/http/respond"
	settingUC "notify-svc/internal/usecase/setting"
)

type GetHandler struct{ Svc *settingUC.Service }

// ServeHTTP returns the global settings of {type}, or {} when unset.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t, ok := pathutil.HandlerType(r)
	if !ok {
		respond.NotFound(w, r)
		return
	}
	settings, err := h.Svc.Get(r.Context(), t)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, settings)
}
