package setting

import (
	"net/http"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/handler/http/pathutil"
	"notify-svc/internal/handler/http/respond"
	settingUC "notify-svc/internal/usecase/setting"
)

type PutHandler struct{ Svc *settingUC.Service }

// ServeHTTP replaces the global settings of {type} and echoes them.
func (h PutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t, ok := pathutil.HandlerType(r)
	if !ok {
		respond.NotFound(w, r)
		return
	}
	var body entity.Settings
	if err := respond.DecodeJSON(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}
	stored, err := h.Svc.Put(r.Context(), t, body)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stored)
}
