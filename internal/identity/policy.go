package identity

// Statement is a single policy statement: a set of actions allowed against
// a set of resources. A statement may be deferred, in which case its
// resource list is computed by a resolver at finalization time rather than
// captured when the statement is created.
type Statement struct {
	Actions   []string
	Resources []string

	resolve func() []string
}

// NewStatement creates a statement with a concrete resource list.
func NewStatement(actions []string, resources []string) *Statement {
	return &Statement{Actions: actions, Resources: resources}
}

// NewDeferredStatement creates a statement whose resource list is resolved
// lazily. The resolver must not be called before the full compile walk has
// finished, otherwise the statement would under-grant.
func NewDeferredStatement(actions []string, resolve func() []string) *Statement {
	return &Statement{Actions: actions, resolve: resolve}
}

// Deferred reports whether the statement still awaits resolution.
func (s *Statement) Deferred() bool {
	return s.resolve != nil
}

// Finalize snapshots a deferred statement's resource list. It is a no-op
// for concrete statements and idempotent for deferred ones.
func (s *Statement) Finalize() {
	if s.resolve == nil {
		return
	}
	s.Resources = s.resolve()
	s.resolve = nil
}
