package compiler

import (
	"fmt"

	"github.com/vk/stageforge/internal/identity"
)

// resourceCache memoizes one shared execution identity per category key.
// First caller wins and triggers construction; every later call returns the
// identical object. The cache is only ever touched from the single-pass
// compile walk, so no synchronization is needed.
type resourceCache struct {
	pipelineName string
	resources    map[string]*identity.SharedResource
	// assumable accumulates, per category, the deduplicated external roles
	// that must be assumable. Read only through deferred statements, which
	// are snapshotted once by Finalize after the walk completes.
	assumable map[string][]string
	seen      map[string]map[string]bool
}

func newResourceCache(pipelineName string) *resourceCache {
	return &resourceCache{
		pipelineName: pipelineName,
		resources:    make(map[string]*identity.SharedResource),
		assumable:    make(map[string][]string),
		seen:         make(map[string]map[string]bool),
	}
}

// Obtain implements producers.ResourceAccessor. The identity is constructed
// with its baseline grants on first request and frozen immediately after:
// any further permission need for the category has to attach as a separate
// dependency object, never by reopening the identity.
func (c *resourceCache) Obtain(category string) (*identity.SharedResource, error) {
	if shared, ok := c.resources[category]; ok {
		return shared, nil
	}

	id := identity.New(fmt.Sprintf("%s-publish-%s", c.pipelineName, category))
	baseline := []*identity.Statement{
		identity.NewStatement([]string{"logs:CreateStream", "logs:PutEvents"}, []string{"*"}),
		identity.NewStatement([]string{"reports:CreateGroup", "reports:Put"}, []string{"*"}),
		identity.NewStatement([]string{"builds:Start", "builds:Stop", "builds:Get"}, []string{"*"}),
		identity.NewDeferredStatement([]string{"sts:AssumeRole"}, func() []string {
			return append([]string(nil), c.assumable[category]...)
		}),
	}
	for _, s := range baseline {
		if err := id.Grant(s); err != nil {
			return nil, err
		}
	}
	id.Freeze()

	shared := &identity.SharedResource{Identity: id}
	c.resources[category] = shared
	return shared, nil
}

// RegisterAssumable implements producers.ResourceAccessor. Roles accumulate
// deduplicated, in first-seen order, across every publish group of the
// category in the whole compile.
func (c *resourceCache) RegisterAssumable(category string, roles ...string) {
	seen := c.seen[category]
	if seen == nil {
		seen = make(map[string]bool)
		c.seen[category] = seen
	}
	for _, role := range roles {
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		c.assumable[category] = append(c.assumable[category], role)
	}
}

// Finalize snapshots every deferred statement. Called exactly once, after
// the full graph walk, so statements reflect all registrations.
func (c *resourceCache) Finalize() {
	for _, shared := range c.resources {
		for _, s := range shared.Identity.Statements() {
			s.Finalize()
		}
	}
}
