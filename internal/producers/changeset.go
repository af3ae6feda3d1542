package producers

import (
	"context"

	"github.com/vk/stageforge/internal/ctxlog"
	"github.com/vk/stageforge/internal/graph"
)

// PrepareProducer emits the create-change-set action for a stack.
type PrepareProducer struct {
	Stack graph.StackRef
}

// Produce implements Producer.
func (p *PrepareProducer) Produce(ctx context.Context, pc *Context) (*Result, error) {
	ctxlog.FromContext(ctx).Debug("Scheduled change-set creation.",
		"stack", p.Stack.Name, "action", pc.ActionName)
	return &Result{RunOrdersConsumed: 1}, nil
}

// ExecuteProducer emits the execute-change-set action for a stack.
type ExecuteProducer struct {
	Stack graph.StackRef
	// CaptureOutputs records the stack's outputs for downstream consumers.
	CaptureOutputs bool
}

// Produce implements Producer.
func (p *ExecuteProducer) Produce(ctx context.Context, pc *Context) (*Result, error) {
	ctxlog.FromContext(ctx).Debug("Scheduled change-set execution.",
		"stack", p.Stack.Name, "action", pc.ActionName, "captureOutputs", p.CaptureOutputs)
	return &Result{RunOrdersConsumed: 1}, nil
}
