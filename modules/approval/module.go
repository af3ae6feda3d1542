// Package approval provides the "approval" runner type: manual gates that
// block a run order slot until a human confirms.
package approval

import "github.com/vk/stageforge/internal/producers"

// Module registers the approval runner with an application instance.
type Module struct{}

// Register implements producers.Module.
func (m *Module) Register(r *producers.Registry) {
	r.Register("approval", producers.NewApprovalStep)
}
