package handler

import (
	"net/http"

	"notify-svc/internal/handler/http/pathutil"
	"notify-svc/internal/handler/http/respond"
	hdlUC "notify-svc/internal/usecase/handler"
)

type CreateHandler struct{ Svc *hdlUC.Service }

// ServeHTTP upserts the handler named by the body's topic.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t, ok := pathutil.HandlerType(r)
	if !ok {
		respond.NotFound(w, r)
		return
	}
	var req upsertRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	hd, err := h.Svc.Upsert(r.Context(), hdlUC.UpsertInput{
		Topic: req.Topic, Type: t, Settings: req.Settings,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(hd))
}
