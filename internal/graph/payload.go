package graph

// Payload is the sealed tagged union over leaf node kinds. Every variant is
// matched exhaustively at dispatch time; an unhandled variant is a
// compile-time defect in this package, not a runtime fallthrough.
type Payload interface {
	payload()
}

// GroupPayload marks a node that groups other nodes. Groups are traversed,
// never scheduled; one leaking into leaf position is an upstream layering
// defect.
type GroupPayload struct {
	// StackGroup is true when the group stands for a multi-stack deployment
	// rather than a plain organizational group.
	StackGroup bool
}

// SelfUpdatePayload marks the step that updates the pipeline itself.
// Scheduling it permanently clears the self-mutation barrier.
type SelfUpdatePayload struct{}

// Asset is one publishable artifact within a publish group.
type Asset struct {
	ID   string
	Path string
	Kind string
	// Role is the external identity that must be assumable to publish this
	// asset into its target location.
	Role string
}

// PublishAssetsPayload schedules publication of an ordered set of assets,
// all of which must share a single kind.
type PublishAssetsPayload struct {
	Assets []Asset
}

// StackRef names a deployable stack.
type StackRef struct {
	Name string
}

// PreparePayload schedules creation of a change set for a stack.
type PreparePayload struct {
	Stack StackRef
}

// ExecutePayload schedules execution of a previously prepared change set.
type ExecutePayload struct {
	Stack          StackRef
	CaptureOutputs bool
}

// StepRef is the contract a user-defined step must satisfy to be scheduled.
// Concrete step capabilities (native integration, scripted build, approval)
// are detected by further interface assertions at dispatch time.
type StepRef interface {
	StepName() string
}

// StepPayload schedules a user-defined step.
type StepPayload struct {
	Step StepRef
	// IsBuildStep marks the designated synthesis build whose compute
	// identity is recorded on the finished plan.
	IsBuildStep bool
}

func (GroupPayload) payload()         {}
func (SelfUpdatePayload) payload()    {}
func (PublishAssetsPayload) payload() {}
func (PreparePayload) payload()       {}
func (ExecutePayload) payload()       {}
func (StepPayload) payload()          {}
