package compiler

import "github.com/vk/stageforge/internal/plan"

// compilerState bundles the process-wide caches for one compile call:
// fallback default artifact, self-mutation barrier, shared resource cache
// and the credential grants already issued. Passed by reference through the
// walk; no ambient global state.
type compilerState struct {
	resources *resourceCache

	// beforeSelfMutation starts true when self-mutation is enabled and
	// flips to false exactly once, when a self-update node is dispatched.
	beforeSelfMutation bool

	// fallbackArtifact is the first produced artifact usable as a default
	// input. Set at most once.
	fallbackArtifact *plan.ArtifactRef

	grantsIssued map[string]bool
}

func newCompilerState(pipelineName string, selfMutation bool) *compilerState {
	return &compilerState{
		resources:          newResourceCache(pipelineName),
		beforeSelfMutation: selfMutation,
		grantsIssued:       make(map[string]bool),
	}
}

// recordFallback keeps the first qualifying default output artifact.
func (s *compilerState) recordFallback(a *plan.ArtifactRef) {
	if s.fallbackArtifact == nil && a != nil {
		s.fallbackArtifact = a
	}
}

// grantOnce reports whether a (provider, category) grant is still pending
// and marks it issued.
func (s *compilerState) grantOnce(provider, category string) bool {
	key := provider + "\x00" + category
	if s.grantsIssued[key] {
		return false
	}
	s.grantsIssued[key] = true
	return true
}
