package handler

import (
	"net/http"

	"notify-svc/internal/handler/http/pathutil"
	"notify-svc/internal/handler/http/respond"
	hdlUC "notify-svc/internal/usecase/handler"
)

type GetHandler struct{ Svc *hdlUC.Service }

// ServeHTTP returns the handler of {topic}, or {} when the topic is unbound
// or bound to another type.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t, ok := pathutil.HandlerType(r)
	if !ok {
		respond.NotFound(w, r)
		return
	}
	hd, err := h.Svc.Get(r.Context(), r.PathValue("topic"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if hd == nil || hd.Type != t {
		respond.JSON(w, http.StatusOK, struct{}{})
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(hd))
}
