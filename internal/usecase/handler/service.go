// Package handler provides use cases for binding topics to delivery handlers.
package handler

import (
	"context"

	"notify-svc/internal/domain/entity"
	"notify-svc/internal/repository"
)

// UpsertInput represents the input parameters for registering a handler.
// A nil Settings means the global settings of Type apply at dispatch time.
type UpsertInput struct {
	Topic    string
	Type     entity.HandlerType
	Settings entity.Settings
}

// Service provides handler management use cases.
type Service struct {
	Repo repository.HandlerRepository
}

// Upsert stores the handler of in.Topic, replacing any existing binding.
// The topic is lower-cased before it is stored.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*entity.Handler, error) {
	if !in.Type.IsValid() {
		return nil, entity.BadRequest("unknown handler type %q", in.Type)
	}
	topic := entity.NormalizeTopic(in.Topic)
	if err := entity.ValidateTopic(topic); err != nil {
		return nil, err
	}

	h := &entity.Handler{Topic: topic, Type: in.Type, Settings: in.Settings}
	if err := s.Repo.Upsert(ctx, h); err != nil {
		return nil, entity.Internal("Failed to store handler", err)
	}
	return h, nil
}

// Get returns the handler of topic, or nil when none is registered.
func (s *Service) Get(ctx context.Context, topic string) (*entity.Handler, error) {
	topic = entity.NormalizeTopic(topic)
	if topic == "" {
		return nil, entity.MissingAttribute("Required attribute: topic")
	}
	h, err := s.Repo.Get(ctx, topic)
	if err != nil {
		return nil, entity.Internal("Failed to get handler", err)
	}
	return h, nil
}

// List returns every handler of type t ordered by topic.
func (s *Service) List(ctx context.Context, t entity.HandlerType) ([]*entity.Handler, error) {
	if !t.IsValid() {
		return nil, entity.BadRequest("unknown handler type %q", t)
	}
	hs, err := s.Repo.ListByType(ctx, t)
	if err != nil {
		return nil, entity.Internal("Failed to list handlers", err)
	}
	if hs == nil {
		hs = []*entity.Handler{}
	}
	return hs, nil
}
