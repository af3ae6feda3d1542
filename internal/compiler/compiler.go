package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/stageforge/internal/ctxlog"
	"github.com/vk/stageforge/internal/graph"
	"github.com/vk/stageforge/internal/nodeid"
	"github.com/vk/stageforge/internal/plan"
	"github.com/vk/stageforge/internal/producers"
)

// DefaultCapacity is the per-stage action limit imposed by the target
// delivery service.
const DefaultCapacity = 50

// registryCategories lists the category keys whose actions need read access
// to external registry credentials.
var registryCategories = map[string]bool{
	"image": true,
}

// Options configures one compiler instance.
type Options struct {
	PipelineName string
	// Capacity overrides the per-stage action limit; 0 means DefaultCapacity.
	Capacity int
	// SelfMutation enables the pipeline self-update barrier semantics.
	SelfMutation bool
	// CredentialProviders are the external registry credential endpoints
	// that get read access for registry-backed categories.
	CredentialProviders []string
}

// Compiler walks the layered graph and emits the stage/action plan.
// Single-threaded, single-pass, non-reentrant: Compile fails fast when
// invoked twice.
type Compiler struct {
	opts     Options
	sections []graph.Section
	state    *compilerState
	built    bool
}

// New creates a compiler over the given sections in declaration order.
func New(sections []graph.Section, opts Options) *Compiler {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	return &Compiler{
		opts:     opts,
		sections: sections,
		state:    newCompilerState(opts.PipelineName, opts.SelfMutation),
	}
}

// Compile produces the full pipeline plan. Any dispatch or production
// failure aborts the compile; partial plans are never exposed.
func (c *Compiler) Compile(ctx context.Context) (*plan.Plan, error) {
	if c.built {
		return nil, &AlreadyBuiltError{}
	}
	c.built = true

	logger := ctxlog.FromContext(ctx).With("pipeline", c.opts.PipelineName)
	pl := plan.New(c.opts.PipelineName, c.opts.Capacity)

	for _, section := range c.sections {
		tranches, err := section.SortedLeaves()
		if err != nil {
			return nil, fmt.Errorf("layering section %q: %w", section.ID(), err)
		}

		chunks := chunkTranches(c.opts.Capacity, tranches)
		expanded := len(chunks) > 1
		for i, chunk := range chunks {
			stageName := section.ID()
			if expanded {
				stageName = fmt.Sprintf("%s.%d", section.ID(), i+1)
			}
			if err := c.compileStage(ctx, pl, stageName, chunk); err != nil {
				return nil, err
			}
			logger.Debug("Stage compiled.", "stage", stageName, "tranches", len(chunk))
		}
	}

	// Snapshot every deferred permission statement now that all
	// registrations happened.
	c.state.resources.Finalize()
	pl.MarkBuilt()
	logger.Debug("Compilation finished.", "stages", len(pl.Stages))
	return pl, nil
}

func (c *Compiler) compileStage(ctx context.Context, pl *plan.Plan, stageName string, chunk []graph.Tranche) error {
	stage := pl.AddStage(stageName)
	ancestor := sharedAncestor(chunk)
	alloc := newRunOrderAllocator()

	for _, tranche := range chunk {
		maxConsumed := 0
		for _, node := range tranche {
			d, err := c.dispatch(node)
			if err != nil {
				return err
			}

			name := nodePath(node).RelativeTo(ancestor).String()
			pc := &producers.Context{
				PipelineName:       c.opts.PipelineName,
				Stage:              stage,
				ActionName:         name,
				RunOrder:           alloc.Current(),
				Resources:          c.state.resources,
				BeforeSelfMutation: c.state.beforeSelfMutation,
				FallbackArtifact:   c.state.fallbackArtifact,
			}
			result, err := d.producer.Produce(ctx, pc)
			if err != nil {
				return fmt.Errorf("producing action %q in stage %q: %w", name, stageName, err)
			}
			if result.RunOrdersConsumed < 1 {
				result.RunOrdersConsumed = 1
			}

			stage.AddAction(&plan.Action{
				Name:              name,
				RunOrder:          alloc.Current(),
				RunOrdersConsumed: result.RunOrdersConsumed,
				Category:          result.Category,
				ComputeIdentity:   result.ComputeIdentity,
			})

			// The self-update action itself still observes the barrier;
			// everything dispatched afterwards sees it cleared.
			if d.clearsBarrier {
				c.state.beforeSelfMutation = false
			}

			c.postProcess(pl, d, result)

			if result.RunOrdersConsumed > maxConsumed {
				maxConsumed = result.RunOrdersConsumed
			}
		}
		alloc.Advance(maxConsumed)
	}
	return nil
}

// postProcess applies the once-per-action side effects after production.
func (c *Compiler) postProcess(pl *plan.Plan, d *dispatched, result *producers.Result) {
	if d.isBuildStep && result.ComputeIdentity != nil {
		pl.RecordSynthIdentity(result.ComputeIdentity)
	}

	c.state.recordFallback(result.DefaultOutput)

	if registryCategories[result.Category] {
		for _, provider := range c.opts.CredentialProviders {
			if c.state.grantOnce(provider, result.Category) {
				pl.RecordGrant(provider, result.Category)
			}
		}
	}
}

// nodePath recovers the structured path from a node's arena key.
func nodePath(n *graph.Node) nodeid.Path {
	return nodeid.Path(strings.Split(n.Key, "/"))
}

// sharedAncestor computes the longest common path prefix of every node in
// the stage group, used to shorten action names.
func sharedAncestor(chunk []graph.Tranche) nodeid.Path {
	var paths []nodeid.Path
	for _, tranche := range chunk {
		for _, node := range tranche {
			paths = append(paths, nodePath(node))
		}
	}
	return nodeid.SharedAncestor(paths)
}
