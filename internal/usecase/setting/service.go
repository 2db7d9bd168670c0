// Package setting provides use cases for the global settings of each
// handler type.
package setting

import (
	"context"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
)

// Service provides global settings use cases.
type Service struct {
	Repo repository.SettingRepository
}

// Get returns the global settings of t. Unset settings yield an empty blob.
func (s *Service) Get(ctx context.Context, t entity.HandlerType) (entity.Settings, error) {
	if !t.IsValid() {
		return nil, entity.BadRequest("unknown handler type %q", t)
	}
	gs, err := s.Repo.Get(ctx, t)
	if err != nil {
		return nil, entity.Internal("Failed to get settings", err)
	}
	if gs == nil || gs.Settings == nil {
		return entity.Settings{}, nil
	}
	return gs.Settings, nil
}

// Put replaces the global settings of t and returns what was stored.
func (s *Service) Put(ctx context.Context, t entity.HandlerType, settings entity.Settings) (entity.Settings, error) {
	if !t.IsValid() {
		return nil, entity.BadRequest("unknown handler type %q", t)
	}
	if settings == nil {
		settings = entity.Settings{}
	}
	if err := s.Repo.Put(ctx, &entity.GlobalSetting{Type: t, Settings: settings}); err != nil {
		return nil, entity.Internal("Failed to store settings", err)
	}
	return settings, nil
}
