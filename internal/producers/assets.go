package producers

import (
	"context"

	"github.com/vk/stageforge/internal/ctxlog"
	"github.com/vk/stageforge/internal/graph"
)

// PublishProducer emits the publish action for one group of assets sharing
// a single kind. All publish groups of the same kind run as the category's
// shared identity, obtained from the resource cache.
type PublishProducer struct {
	Kind   string
	Assets []graph.Asset
}

// Produce implements Producer.
func (p *PublishProducer) Produce(ctx context.Context, pc *Context) (*Result, error) {
	shared, err := pc.Resources.Obtain(p.Kind)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Scheduled asset publication.",
		"kind", p.Kind, "assets", len(p.Assets), "identity", shared.Identity.Name)
	return &Result{
		RunOrdersConsumed: 1,
		ComputeIdentity:   shared.Identity,
		Category:          p.Kind,
	}, nil
}
