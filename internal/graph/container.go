package graph

import "fmt"

// Tranche is an ordered set of leaf nodes with no dependency edges among
// them, eligible to execute at the same ordering position.
type Tranche []*Node

// Section is what the compiler consumes: a top-level container exposing its
// id and its leaves layered into dependency-ordered tranches.
type Section interface {
	ID() string
	SortedLeaves() ([]Tranche, error)
}

// Container is a view over one top-level container of the arena.
type Container struct {
	graph *Graph
	key   string
}

// ID returns the container's id.
func (c *Container) ID() string {
	return c.graph.nodes[c.key].ID
}

// Key returns the container's arena key.
func (c *Container) Key() string {
	return c.key
}

// Leaves returns every descendant leaf of the container in declaration
// order (depth-first over ordered children).
func (c *Container) Leaves() []*Node {
	var leaves []*Node
	var walk func(key string)
	walk = func(key string) {
		n := c.graph.nodes[key]
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(c.key)
	return leaves
}

// SortedLeaves layers the container's leaves into tranches: each tranche
// holds the leaves whose in-section dependencies were all placed in earlier
// tranches. Leaves keep declaration order within a tranche. Dependencies on
// nodes outside this container are satisfied by section ordering and are
// ignored here. A dependency cycle among the container's leaves is reported
// as an error naming one involved node.
func (c *Container) SortedLeaves() ([]Tranche, error) {
	leaves := c.Leaves()
	inSection := make(map[string]bool, len(leaves))
	for _, n := range leaves {
		inSection[n.Key] = true
	}

	placed := make(map[string]bool, len(leaves))
	remaining := leaves
	var tranches []Tranche

	for len(remaining) > 0 {
		var tranche Tranche
		var deferred []*Node
		for _, n := range remaining {
			ready := true
			for _, dep := range c.graph.Dependencies(n.Key) {
				if inSection[dep] && !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				tranche = append(tranche, n)
			} else {
				deferred = append(deferred, n)
			}
		}
		if len(tranche) == 0 {
			return nil, fmt.Errorf("dependency cycle involving node '%s'", deferred[0].Key)
		}
		for _, n := range tranche {
			placed[n.Key] = true
		}
		tranches = append(tranches, tranche)
		remaining = deferred
	}

	return tranches, nil
}
