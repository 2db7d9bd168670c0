package notify

import (
	"context"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
)

// Resolution is the outcome of resolving a topic.
type Resolution struct {
	Handler  *entity.Handler
	Settings entity.Settings
	Channel  Channel
}

// GlobalLookup fetches the global settings of a handler type.
// It returns nil when none are stored.
type GlobalLookup func(ctx context.Context, t entity.HandlerType) (*entity.GlobalSetting, error)

// EffectiveSettings picks the settings a handler dispatches with: its own
// non-empty blob, else the global blob of its type, else an empty blob.
// A present but empty blob counts as absent at both levels.
func EffectiveSettings(ctx context.Context, h *entity.Handler, global GlobalLookup) (entity.Settings, error) {
	if !h.Settings.IsEmpty() {
		return h.Settings.Clone(), nil
	}
	gs, err := global(ctx, h.Type)
	if err != nil {
		return nil, err
	}
	if gs == nil || gs.Settings.IsEmpty() {
		return entity.Settings{}, nil
	}
	return gs.Settings.Clone(), nil
}

// Resolver turns a topic into a ready to use Channel. Nothing is cached;
// every call reads the current handler and settings.
type Resolver struct {
	handlers repository.HandlerRepository
	settings repository.SettingRepository
	registry *Registry
}

func NewResolver(handlers repository.HandlerRepository, settings repository.SettingRepository, registry *Registry) *Resolver {
	return &Resolver{handlers: handlers, settings: settings, registry: registry}
}

// Resolve looks up the handler of topic, computes its effective settings and
// builds the channel.
func (r *Resolver) Resolve(ctx context.Context, topic string) (*Resolution, error) {
	topic = entity.NormalizeTopic(topic)

	h, err := r.handlers.Get(ctx, topic)
	if err != nil {
		return nil, entity.Internal("failed to load handler", err)
	}
	if h == nil {
		return nil, entity.NotFound("no such topic %s", topic)
	}

	settings, err := EffectiveSettings(ctx, h, r.settings.Get)
	if err != nil {
		return nil, entity.Internal("failed to load global settings", err)
	}

	ch, err := r.registry.Build(h.Type, settings)
	if err != nil {
		return nil, err
	}
	return &Resolution{Handler: h, Settings: settings, Channel: ch}, nil
}
