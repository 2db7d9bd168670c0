package repository

import (
	"context"

	"notify-svc/internal/domain/entity"
)

// HandlerRepository persists the topic to handler binding.
// Topics are expected in normalized (lower-case) form.
type HandlerRepository interface {
	// Upsert inserts the handler or replaces the existing row for its topic.
	Upsert(ctx context.Context, handler *entity.Handler) error
	// Get returns nil, nil when the topic has no handler.
	Get(ctx context.Context, topic string) (*entity.Handler, error)
	ListByType(ctx context.Context, handlerType entity.HandlerType) ([]*entity.Handler, error)
}
