package repository

import (
	"context"

	"notify-svc/internal/domain/entity"
)

// SettingRepository persists one global settings blob per handler type.
// Get returns nil, nil when no row exists.
type SettingRepository interface {
	Get(ctx context.Context, handlerType entity.HandlerType) (*entity.GlobalSetting, error)
	Put(ctx context.Context, setting *entity.GlobalSetting) error
}
