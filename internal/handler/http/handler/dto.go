package handler

import "notify-svc/internal/domain/entity"

// DTO is the wire form of a handler. Settings is null when the handler
// inherits the global settings of its type.
type DTO struct {
	Topic    string          `json:"topic"`
	Settings entity.Settings `json:"settings"`
}

type upsertRequest struct {
	Topic    string          `json:"topic"`
	Settings entity.Settings `json:"settings"`
}

func toDTO(h *entity.Handler) DTO {
	return DTO{Topic: h.Topic, Settings: h.Settings}
}
