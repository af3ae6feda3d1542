package identity

import (
	"fmt"

	"github.com/google/uuid"
)

// Identity is a named execution identity (a role, in delivery-service
// terms) that actions assume at runtime.
type Identity struct {
	// Name is the human-readable identity name.
	Name string
	// Handle is the stable, unique reference other resources use to point
	// at this identity.
	Handle string

	statements []*Statement
	frozen     bool
}

// New creates an identity with a freshly minted handle and no statements.
func New(name string) *Identity {
	return &Identity{
		Name:   name,
		Handle: fmt.Sprintf("identity:%s/%s", name, uuid.NewString()),
	}
}

// Grant appends a policy statement to the identity. Granting to a frozen
// identity is a programmer error: late permission needs belong on an
// Attachment instead.
func (id *Identity) Grant(s *Statement) error {
	if id.frozen {
		return fmt.Errorf("identity %q is frozen, attach late grants as a dependency object", id.Name)
	}
	id.statements = append(id.statements, s)
	return nil
}

// Freeze marks the identity as fully constructed. Statements already granted
// remain, including deferred ones, but no new statement may be added.
func (id *Identity) Freeze() {
	id.frozen = true
}

// Frozen reports whether the identity has been frozen.
func (id *Identity) Frozen() bool {
	return id.frozen
}

// Statements returns the identity's policy statements in grant order.
func (id *Identity) Statements() []*Statement {
	return id.statements
}

// Attachment is a late-bound dependency object carrying policy statements
// that could not be granted directly because the target identity was
// already frozen. Consumers of the identity must depend on the attachment.
type Attachment struct {
	Name       string
	Statements []*Statement
}

// SharedResource is one category's shared execution infrastructure: the
// lazily constructed identity plus the optional dependency object that
// consumers of the identity must also depend on.
type SharedResource struct {
	Identity   *Identity
	Dependency *Attachment
}
