package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/stageforge/internal/builder"
	"github.com/vk/stageforge/internal/compiler"
	"github.com/vk/stageforge/internal/ctxlog"
)

// Run executes the main application logic: build the dependency graph from
// the manifest, compile it into a staged plan and render the result.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.logger.Debug("Building dependency graph from manifest...")
	g, err := builder.Build(ctx, a.manifest, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	sections := g.Sections()
	a.logger.Debug("Dependency graph built.", "sections", len(sections))

	capacity := a.manifest.Pipeline.Capacity
	if a.config.Capacity > 0 {
		capacity = a.config.Capacity
	}

	comp := compiler.New(sections, compiler.Options{
		PipelineName:        a.manifest.Pipeline.Name,
		Capacity:            capacity,
		SelfMutation:        a.manifest.Pipeline.SelfMutation,
		CredentialProviders: a.manifest.Pipeline.CredentialProviders,
	})
	pl, err := comp.Compile(ctx)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	a.logger.Info("Pipeline compiled.", "pipeline", pl.Name, "stages", len(pl.Stages))

	rendered, err := pl.RenderYAML()
	if err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}

	if a.config.OutputPath != "" {
		if err := os.WriteFile(a.config.OutputPath, rendered, 0o644); err != nil {
			return fmt.Errorf("failed to write plan to %s: %w", a.config.OutputPath, err)
		}
		a.logger.Info("Plan written.", "path", a.config.OutputPath)
	} else {
		if _, err := a.outW.Write(rendered); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
