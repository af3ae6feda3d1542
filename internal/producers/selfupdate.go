package producers

import (
	"context"
	"fmt"

	"github.com/vk/stageforge/internal/ctxlog"
	"github.com/vk/stageforge/internal/identity"
)

// SelfUpdateProducer emits the action that redeploys the pipeline itself.
// The compiler clears the self-mutation barrier when this node is
// dispatched; the producer only emits the action.
type SelfUpdateProducer struct{}

// Produce implements Producer.
func (p *SelfUpdateProducer) Produce(ctx context.Context, pc *Context) (*Result, error) {
	project := identity.New(fmt.Sprintf("%s-self-mutate", pc.PipelineName))
	if err := project.Grant(identity.NewStatement(
		[]string{"pipeline:Update", "logs:CreateStream", "logs:PutEvents"},
		[]string{"*"},
	)); err != nil {
		return nil, err
	}
	project.Freeze()

	ctxlog.FromContext(ctx).Debug("Scheduled pipeline self-update.",
		"action", pc.ActionName, "stage", pc.Stage.Name)
	return &Result{RunOrdersConsumed: 1, ComputeIdentity: project}, nil
}
