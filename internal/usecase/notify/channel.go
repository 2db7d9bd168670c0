// Package notify resolves topics to delivery channels, dispatches
// notifications and serves the notification archive history.
package notify

import (
	"context"
	"sort"
	"sync"

	"notify-svc/internal/domain/entity"
)

// Channel delivers one message. Implementations make a single attempt and
// report failures with the entity error taxonomy.
type Channel interface {
	// Name identifies the channel in logs and metrics (e.g. "email").
	Name() string

	// Send delivers msg, respecting ctx cancellation and deadline.
	Send(ctx context.Context, msg *entity.Message) error
}

// ChannelFactory builds a Channel from an effective settings blob. It fails
// with MissingAttribute or BadRequest when the blob is unusable.
type ChannelFactory func(settings entity.Settings) (Channel, error)

// Registry maps handler types to channel factories.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[entity.HandlerType]ChannelFactory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[entity.HandlerType]ChannelFactory)}
}

// Register installs the factory for a handler type, replacing any previous one.
func (r *Registry) Register(t entity.HandlerType, f ChannelFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[t] = f
}

// Build constructs the channel for t. A type without a factory is Unavailable.
func (r *Registry) Build(t entity.HandlerType, settings entity.Settings) (Channel, error) {
	r.mu.RLock()
	f, ok := r.factories[t]
	r.mu.RUnlock()
	if !ok {
		return nil, entity.Unavailable("no handler for topic")
	}
	return f(settings)
}

// Types returns the registered handler types in lexical order.
func (r *Registry) Types() []entity.HandlerType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.HandlerType, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
