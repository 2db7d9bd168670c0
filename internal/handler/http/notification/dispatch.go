package notification

import (
	"net/http"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/handler/http/respond"
)

type DispatchHandler struct{ Svc Dispatcher }

// ServeHTTP sends the body {title, content, attachments?} to the handler of
// {topic}. The response carries the archive record and stored attachment names.
func (h DispatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var msg entity.Message
	if err := respond.DecodeJSON(r, &msg); err != nil {
		respond.Error(w, r, err)
		return
	}
	res, err := h.Svc.Dispatch(r.Context(), r.PathValue("topic"), &msg)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}
