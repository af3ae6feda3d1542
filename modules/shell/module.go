// Package shell provides the "shell" runner type: steps whose commands run
// as a managed build project.
package shell

import "github.com/vk/stageforge/internal/producers"

// Module registers the shell runner with an application instance.
type Module struct{}

// Register implements producers.Module.
func (m *Module) Register(r *producers.Registry) {
	r.Register("shell", producers.NewShellStep)
}
