package handler

import (
	"net/http"

	"notify-svc/internal/handler/http/pathutil"
	"notify-svc/internal/handler/http/respond"
	hdlUC "notify-svc/internal/usecase/handler"
)

type ListHandler struct{ Svc *hdlUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t, ok := pathutil.HandlerType(r)
	if !ok {
		respond.NotFound(w, r)
		return
	}
	list, err := h.Svc.List(r.Context(), t)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	out := make([]DTO, 0, len(list))
	for _, e := range list {
		out = append(out, toDTO(e))
	}
	respond.JSON(w, http.StatusOK, out)
}
