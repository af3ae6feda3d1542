package producers

import (
	"context"

	"github.com/vk/stageforge/internal/identity"
	"github.com/vk/stageforge/internal/plan"
)

// ResourceAccessor is the window producers get into the per-category shared
// resource cache during compilation. It is valid only for the duration of
// the compile walk.
type ResourceAccessor interface {
	// Obtain returns the category's shared resource, constructing it on
	// first use. Later calls return the identical object.
	Obtain(category string) (*identity.SharedResource, error)
	// RegisterAssumable records external identities that must be assumable
	// for the category. The final permission statement is evaluated only at
	// plan finalization, so late registrations are never lost.
	RegisterAssumable(category string, roles ...string)
}

// Context supplies a producer with everything it may consult while emitting
// its action.
type Context struct {
	// PipelineName is the name of the pipeline being compiled.
	PipelineName string
	// Stage is the stage the action lands in.
	Stage *plan.Stage
	// ActionName is the assigned, sanitized action name.
	ActionName string
	// RunOrder is the ordering token assigned to the action's tranche.
	RunOrder int
	// Resources accesses the shared per-category infrastructure cache.
	Resources ResourceAccessor
	// BeforeSelfMutation reports whether this action runs strictly before
	// any pipeline self-update. Informational only; it must not change the
	// stage or run-order layout.
	BeforeSelfMutation bool
	// FallbackArtifact is the pipeline's default input artifact, nil until
	// the first qualifying action produced one.
	FallbackArtifact *plan.ArtifactRef
}

// Result is what a producer reports back after emitting its action.
type Result struct {
	// RunOrdersConsumed is the number of ordering slots occupied, >= 1.
	RunOrdersConsumed int
	// ComputeIdentity is the identity allocated for the action's compute,
	// nil when the action needs none.
	ComputeIdentity *identity.Identity
	// DefaultOutput is the action's usable default output artifact, if any.
	DefaultOutput *plan.ArtifactRef
	// Category is the action's category key, empty when the action shares
	// no infrastructure.
	Category string
}

// Producer emits one scheduled action for a leaf node.
type Producer interface {
	Produce(ctx context.Context, pc *Context) (*Result, error)
}
