package compiler

import "fmt"

// StructuralError reports a violated graph invariant, e.g. a container
// leaking into leaf position. It indicates an upstream layering bug and is
// never retried.
type StructuralError struct {
	NodeKey string
	Reason  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural defect at node '%s': %s", e.NodeKey, e.Reason)
}

// ValidationError reports inconsistent user-supplied configuration, e.g.
// mixed asset kinds inside one publish group. Surfaced immediately, never
// retried.
type ValidationError struct {
	NodeKey string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration at node '%s': %s", e.NodeKey, e.Reason)
}

// UnsupportedStepError reports a step capability this compiler cannot
// translate for the target delivery service.
type UnsupportedStepError struct {
	NodeKey  string
	StepName string
}

func (e *UnsupportedStepError) Error() string {
	return fmt.Sprintf("step '%s' at node '%s' has no capability this compiler can translate", e.StepName, e.NodeKey)
}

// AlreadyBuiltError reports a second Compile call on the same instance.
// Lifecycle misuse, programmer error.
type AlreadyBuiltError struct{}

func (e *AlreadyBuiltError) Error() string {
	return "compile was already invoked on this compiler instance"
}
