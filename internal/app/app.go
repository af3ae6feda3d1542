package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/stageforge/internal/ctxlog"
	"github.com/vk/stageforge/internal/model"
	"github.com/vk/stageforge/internal/producers"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *producers.Registry
	manifest *model.Manifest
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// The logger writes to errW so the rendered plan on outW stays clean.
func NewApp(outW, errW io.Writer, config *Config, modules ...producers.Module) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	manifest, err := model.Load(ctx, config.ManifestPath)
	if err != nil {
		// A failure to load the manifest is a fatal startup error.
		panic(fmt.Errorf("failed to load manifest: %w", err))
	}
	logger.Debug("Manifest loaded into unified model.")

	registry := producers.NewRegistry()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(registry)
	}
	logger.Debug("All runner modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   config,
		registry: registry,
		manifest: manifest,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *producers.Registry {
	return a.registry
}
