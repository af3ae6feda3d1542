package compiler

import (
	"github.com/vk/stageforge/internal/graph"
	"github.com/vk/stageforge/internal/producers"
)

// dispatched pairs a node's producer with the side effects its scheduling
// implies.
type dispatched struct {
	producer producers.Producer
	// clearsBarrier is true for the self-update node: every action
	// scheduled after it observes the barrier as cleared.
	clearsBarrier bool
	// isBuildStep marks the designated synthesis build.
	isBuildStep bool
}

// dispatch maps a leaf node's payload to its producer. Pure apart from the
// assumable-role registration a publish group performs against the resource
// cache.
func (c *Compiler) dispatch(node *graph.Node) (*dispatched, error) {
	switch p := node.Payload.(type) {
	case nil:
		return nil, &StructuralError{NodeKey: node.Key, Reason: "unexpected container at scheduling time"}
	case graph.GroupPayload:
		return nil, &StructuralError{NodeKey: node.Key, Reason: "unexpected container at scheduling time"}

	case graph.SelfUpdatePayload:
		return &dispatched{producer: &producers.SelfUpdateProducer{}, clearsBarrier: true}, nil

	case graph.PublishAssetsPayload:
		return c.dispatchPublish(node, p)

	case graph.PreparePayload:
		return &dispatched{producer: &producers.PrepareProducer{Stack: p.Stack}}, nil

	case graph.ExecutePayload:
		return &dispatched{producer: &producers.ExecuteProducer{
			Stack:          p.Stack,
			CaptureOutputs: p.CaptureOutputs,
		}}, nil

	case graph.StepPayload:
		return c.dispatchStep(node, p)

	default:
		return nil, &StructuralError{NodeKey: node.Key, Reason: "unknown payload variant"}
	}
}

func (c *Compiler) dispatchPublish(node *graph.Node, p graph.PublishAssetsPayload) (*dispatched, error) {
	if len(p.Assets) == 0 {
		return nil, &ValidationError{NodeKey: node.Key, Reason: "publish group contains no assets"}
	}
	kind := p.Assets[0].Kind
	roles := make([]string, 0, len(p.Assets))
	for _, asset := range p.Assets {
		if asset.Kind != kind {
			return nil, &ValidationError{
				NodeKey: node.Key,
				Reason:  "assets of mixed kinds in one publish group: " + kind + " and " + asset.Kind,
			}
		}
		roles = append(roles, asset.Role)
	}

	// The final permission set is unknowable until the walk completes, so
	// registrations only feed the deferred statement, never a snapshot.
	c.state.resources.RegisterAssumable(kind, roles...)

	return &dispatched{producer: &producers.PublishProducer{Kind: kind, Assets: p.Assets}}, nil
}

func (c *Compiler) dispatchStep(node *graph.Node, p graph.StepPayload) (*dispatched, error) {
	switch step := p.Step.(type) {
	case producers.NativeStep:
		return &dispatched{producer: step.Producer(), isBuildStep: p.IsBuildStep}, nil
	case producers.ScriptedBuild:
		return &dispatched{
			producer:    &producers.ShellProducer{Step: step, SynthOverride: p.IsBuildStep},
			isBuildStep: p.IsBuildStep,
		}, nil
	case producers.Approval:
		return &dispatched{producer: &producers.ApprovalProducer{Step: step}}, nil
	default:
		name := ""
		if p.Step != nil {
			name = p.Step.StepName()
		}
		return nil, &UnsupportedStepError{NodeKey: node.Key, StepName: name}
	}
}
