package producers

import (
	"context"

	"github.com/vk/stageforge/internal/ctxlog"
)

// ApprovalProducer translates an approval step into a manual gate: one
// ordering slot, no compute identity.
type ApprovalProducer struct {
	Step Approval
}

// Produce implements Producer.
func (p *ApprovalProducer) Produce(ctx context.Context, pc *Context) (*Result, error) {
	ctxlog.FromContext(ctx).Debug("Scheduled manual approval.",
		"action", pc.ActionName, "stage", pc.Stage.Name)
	return &Result{RunOrdersConsumed: 1}, nil
}
