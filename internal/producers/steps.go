package producers

import "github.com/vk/stageforge/internal/graph"

// NativeStep is a step that knows how to integrate with the target delivery
// service directly. Its producer is delegated to without translation.
type NativeStep interface {
	graph.StepRef
	Producer() Producer
}

// ScriptedBuild is a step translated through the standard compute adapter:
// shell commands running in a managed build project.
type ScriptedBuild interface {
	graph.StepRef
	Commands() []string
	InstallCommands() []string
	// OutputArtifact names the artifact the build exposes, empty for none.
	OutputArtifact() string
}

// Approval is a step translated into a manual gate. It consumes one
// ordering slot and allocates no compute identity.
type Approval interface {
	graph.StepRef
	Instructions() string
}

// shellStep is the standard ScriptedBuild implementation backing the
// "shell" runner type.
type shellStep struct {
	spec StepSpec
}

// NewShellStep creates a scripted-build step from its spec.
func NewShellStep(spec StepSpec) (graph.StepRef, error) {
	return &shellStep{spec: spec}, nil
}

func (s *shellStep) StepName() string          { return s.spec.Name }
func (s *shellStep) Commands() []string        { return s.spec.Commands }
func (s *shellStep) InstallCommands() []string { return s.spec.InstallCommands }
func (s *shellStep) OutputArtifact() string    { return s.spec.Output }

// approvalStep backs the "approval" runner type.
type approvalStep struct {
	spec StepSpec
}

// NewApprovalStep creates a manual-approval step from its spec.
func NewApprovalStep(spec StepSpec) (graph.StepRef, error) {
	return &approvalStep{spec: spec}, nil
}

func (s *approvalStep) StepName() string     { return s.spec.Name }
func (s *approvalStep) Instructions() string { return s.spec.Instructions }
