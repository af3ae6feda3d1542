package nodeid

import "strings"

// Path is the structured representation of a node identifier: the ordered
// sequence of node ids from the root container down to the node itself.
type Path []string

// String serializes the path into its canonical dotted representation.
// Each segment is sanitized independently before joining.
func (p Path) String() string {
	segments := make([]string, len(p))
	for i, segment := range p {
		segments[i] = Sanitize(segment)
	}
	return strings.Join(segments, ".")
}

// Equal checks for equality between two paths.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// RelativeTo strips the given ancestor prefix from the path. If ancestor is
// not a prefix of p, the path is returned unchanged.
func (p Path) RelativeTo(ancestor Path) Path {
	if len(ancestor) >= len(p) {
		return p
	}
	for i := range ancestor {
		if p[i] != ancestor[i] {
			return p
		}
	}
	return p[len(ancestor):]
}

// SharedAncestor returns the longest common prefix of all given paths. An
// empty slice yields an empty ancestor.
func SharedAncestor(paths []Path) Path {
	if len(paths) == 0 {
		return nil
	}
	prefix := paths[0]
	for _, p := range paths[1:] {
		limit := len(prefix)
		if len(p) < limit {
			limit = len(p)
		}
		i := 0
		for i < limit && prefix[i] == p[i] {
			i++
		}
		prefix = prefix[:i]
		if len(prefix) == 0 {
			break
		}
	}
	return prefix
}
