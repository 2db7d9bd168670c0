package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"notify-svc/internal/domain/entity"
	hdlUC "notify-svc/internal/usecase/handler"
)

// Bootstrap is a declarative provisioning document:
//
//	settings:
//	  email:
//	    server: smtp.example.com
//	    port: 587
//	handlers:
//	  - topic: alerts
//	    type: email
//	    settings:
//	      toAddr: [ops@example.com]
type Bootstrap struct {
	Settings map[string]map[string]any `yaml:"settings"`
	Handlers []BootstrapHandler        `yaml:"handlers"`
}

// BootstrapHandler is one handler entry of a Bootstrap document.
type BootstrapHandler struct {
	Topic    string         `yaml:"topic"`
	Type     string         `yaml:"type"`
	Settings map[string]any `yaml:"settings"`
}

// SettingsWriter stores the global settings of a handler type.
type SettingsWriter interface {
	Put(ctx context.Context, t entity.HandlerType, settings entity.Settings) (entity.Settings, error)
}

// HandlerWriter stores one handler.
type HandlerWriter interface {
	Upsert(ctx context.Context, in hdlUC.UpsertInput) (*entity.Handler, error)
}

// LoadBootstrap reads a provisioning document from YAML file.
// The path parameter is expected to come from a trusted source (command-line argument or environment).
func LoadBootstrap(path string) (*Bootstrap, error) {
	// #nosec G304 -- path is provided by the operator, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bootstrap file: %w", err)
	}

	var b Bootstrap
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bootstrap file: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("bootstrap validation failed: %w", err)
	}
	return &b, nil
}

func (b *Bootstrap) validate() error {
	for name := range b.Settings {
		if !entity.HandlerType(name).IsValid() {
			return fmt.Errorf("settings: unknown handler type %q", name)
		}
	}
	for i, h := range b.Handlers {
		if h.Topic == "" {
			return fmt.Errorf("handlers[%d]: topic is required", i)
		}
		if !entity.HandlerType(h.Type).IsValid() {
			return fmt.Errorf("handlers[%d]: unknown handler type %q", i, h.Type)
		}
	}
	return nil
}

// Apply writes the document through the use cases: global settings first,
// then handlers in file order.
func (b *Bootstrap) Apply(ctx context.Context, settings SettingsWriter, handlers HandlerWriter) error {
	for name, blob := range b.Settings {
		if _, err := settings.Put(ctx, entity.HandlerType(name), entity.Settings(blob)); err != nil {
			return fmt.Errorf("bootstrap settings %s: %w", name, err)
		}
	}
	for _, h := range b.Handlers {
		in := hdlUC.UpsertInput{Topic: h.Topic, Type: entity.HandlerType(h.Type)}
		if h.Settings != nil {
			in.Settings = entity.Settings(h.Settings)
		}
		if _, err := handlers.Upsert(ctx, in); err != nil {
			return fmt.Errorf("bootstrap handler %s: %w", h.Topic, err)
		}
	}
	slog.Info("bootstrap applied",
		slog.Int("settings", len(b.Settings)),
		slog.Int("handlers", len(b.Handlers)))
	return nil
}
