package producers

import (
	"fmt"

	"github.com/vk/stageforge/internal/graph"
)

// StepSpec is the format-agnostic configuration of one user-declared step,
// as extracted from the manifest by the builder.
type StepSpec struct {
	Name            string
	Commands        []string
	InstallCommands []string
	// Output names the artifact the step exposes, empty for none.
	Output string
	// Instructions is free-form text shown to a manual approver.
	Instructions string
	// Env holds resolved environment values for the step's compute.
	Env map[string]string
}

// StepFactory turns a StepSpec into a schedulable step reference.
type StepFactory func(spec StepSpec) (graph.StepRef, error)

// Module is the interface runner modules implement to register their step
// factories with an application instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds the step factories known to a single application instance,
// keyed by runner type.
type Registry struct {
	factories map[string]StepFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]StepFactory)}
}

// Register adds a factory for the given runner type, replacing any previous
// registration.
func (r *Registry) Register(runnerType string, f StepFactory) {
	r.factories[runnerType] = f
}

// Build resolves the runner type and constructs the step reference.
func (r *Registry) Build(runnerType string, spec StepSpec) (graph.StepRef, error) {
	f, ok := r.factories[runnerType]
	if !ok {
		return nil, fmt.Errorf("unknown runner type %q for step %q", runnerType, spec.Name)
	}
	return f(spec)
}

// RunnerTypes returns the registered runner types, for diagnostics.
func (r *Registry) RunnerTypes() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}
