package plan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/stageforge/internal/identity"
)

// NotBuiltError reports a read of a plan aggregate before compilation
// finished. Lifecycle misuse, never retried.
type NotBuiltError struct {
	What string
}

func (e *NotBuiltError) Error() string {
	return fmt.Sprintf("%s is not available: pipeline has not been compiled yet", e.What)
}

// ArtifactRef is a reference to a produced artifact that downstream actions
// may consume as input.
type ArtifactRef struct {
	Name string
}

// Action is one scheduled unit of work derived from a leaf node.
type Action struct {
	// Name is the node's sanitized path relative to the stage's shared ancestor.
	Name string
	// RunOrder is the intra-stage ordering token, >= 1. Actions sharing a
	// value execute concurrently.
	RunOrder int
	// RunOrdersConsumed is how many ordering slots the action occupies.
	RunOrdersConsumed int
	// Category is the action's category key, empty when it shares nothing.
	Category string
	// ComputeIdentity is the identity the action's compute runs as, if any.
	ComputeIdentity *identity.Identity
}

// Stage is a named, capacity-bounded container of actions. A stage starts
// only after its predecessor completed in full.
type Stage struct {
	Name    string
	Actions []*Action
}

// AddAction appends an action to the stage.
func (s *Stage) AddAction(a *Action) {
	s.Actions = append(s.Actions, a)
}

// CredentialGrant records read access given to an external credential
// provider for one category's usage.
type CredentialGrant struct {
	Provider string
	Category string
}

// Plan is the compiled pipeline layout.
type Plan struct {
	Name     string
	Capacity int
	Stages   []*Stage
	Grants   []CredentialGrant

	handle        string
	synthIdentity *identity.Identity
	built         bool
}

// New creates an empty plan with a freshly minted pipeline handle.
func New(name string, capacity int) *Plan {
	return &Plan{
		Name:     name,
		Capacity: capacity,
		handle:   uuid.NewString(),
	}
}

// AddStage appends a new, empty stage and returns it.
func (p *Plan) AddStage(name string) *Stage {
	s := &Stage{Name: name}
	p.Stages = append(p.Stages, s)
	return s
}

// RecordSynthIdentity stores the designated synthesis build's compute
// identity for later querying.
func (p *Plan) RecordSynthIdentity(id *identity.Identity) {
	p.synthIdentity = id
}

// RecordGrant stores a credential provider grant.
func (p *Plan) RecordGrant(provider, category string) {
	p.Grants = append(p.Grants, CredentialGrant{Provider: provider, Category: category})
}

// MarkBuilt finalizes the plan; aggregates become readable.
func (p *Plan) MarkBuilt() {
	p.built = true
}

// Handle returns the delivery-service pipeline handle.
func (p *Plan) Handle() (string, error) {
	if !p.built {
		return "", &NotBuiltError{What: "pipeline handle"}
	}
	return p.handle, nil
}

// SynthIdentity returns the compute identity of the designated synthesis
// build. Reading it before compilation finished is a programmer error.
func (p *Plan) SynthIdentity() (*identity.Identity, error) {
	if !p.built {
		return nil, &NotBuiltError{What: "synthesis compute identity"}
	}
	return p.synthIdentity, nil
}
