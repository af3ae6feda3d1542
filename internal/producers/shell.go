package producers

import (
	"context"
	"fmt"

	"github.com/vk/stageforge/internal/ctxlog"
	"github.com/vk/stageforge/internal/identity"
	"github.com/vk/stageforge/internal/nodeid"
	"github.com/vk/stageforge/internal/plan"
)

// SynthProjectName is the fixed compute-project suffix used for the
// designated synthesis build, kept stable for back-compatibility with
// pre-existing pipelines.
const SynthProjectName = "synth"

// ShellProducer translates a scripted-build step into a managed compute
// action. The build allocates its own compute identity; a build that
// declares install commands occupies an extra ordering slot for the install
// phase.
type ShellProducer struct {
	Step ScriptedBuild
	// SynthOverride pins the compute project name for the designated
	// synthesis build instead of deriving it from the action name.
	SynthOverride bool
}

// Produce implements Producer.
func (p *ShellProducer) Produce(ctx context.Context, pc *Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("step", p.Step.StepName())

	suffix := nodeid.Sanitize(pc.ActionName)
	if p.SynthOverride {
		suffix = SynthProjectName
	}
	project := identity.New(fmt.Sprintf("%s-%s", pc.PipelineName, suffix))
	if err := project.Grant(identity.NewStatement(
		[]string{"logs:CreateStream", "logs:PutEvents"},
		[]string{"*"},
	)); err != nil {
		return nil, err
	}
	project.Freeze()

	slots := 1
	if len(p.Step.InstallCommands()) > 0 {
		slots = 2
	}
	logger.Debug("Scheduled scripted build.",
		"project", project.Name,
		"slots", slots,
		"beforeSelfMutation", pc.BeforeSelfMutation)

	result := &Result{
		RunOrdersConsumed: slots,
		ComputeIdentity:   project,
	}
	if out := p.Step.OutputArtifact(); out != "" {
		result.DefaultOutput = &plan.ArtifactRef{
			Name: nodeid.Sanitize(pc.ActionName + "_" + out),
		}
	}
	return result, nil
}
