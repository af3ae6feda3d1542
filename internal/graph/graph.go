package graph

import (
	"fmt"
	"strings"

	"github.com/vk/stageforge/internal/nodeid"
)

// Graph is the arena of all nodes in one deployment structure. Nodes are
// addressed by their arena key: the slash-joined ids from the root down, so
// ids only have to be unique along any path from the root.
type Graph struct {
	nodes map[string]*Node
	roots []string
	// deps maps a node key to the ordered keys it depends on.
	deps map[string][]string
}

// Node is a single vertex in the arena. Containers have ordered children
// and a nil payload; leaves carry a payload and no children.
type Node struct {
	// ID is the node's own path segment.
	ID string
	// Key is the node's arena key.
	Key string
	// Parent is the arena key of the containing node, empty for roots.
	Parent string
	// Children holds the ordered arena keys of child nodes.
	Children []string
	// Payload is the leaf variant, nil for containers.
	Payload Payload
}

// IsLeaf reports whether the node carries a schedulable payload.
func (n *Node) IsLeaf() bool {
	return n.Payload != nil
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		deps:  make(map[string][]string),
	}
}

func childKey(parent, id string) string {
	if parent == "" {
		return id
	}
	return parent + "/" + id
}

func (g *Graph) add(parent, id string, payload Payload) (string, error) {
	if id == "" {
		return "", fmt.Errorf("node id must not be empty")
	}
	if parent != "" {
		if _, ok := g.nodes[parent]; !ok {
			return "", fmt.Errorf("parent node not found: %s", parent)
		}
	}
	key := childKey(parent, id)
	if _, ok := g.nodes[key]; ok {
		return "", fmt.Errorf("duplicate node id %q under %q", id, parent)
	}
	g.nodes[key] = &Node{ID: id, Key: key, Parent: parent, Payload: payload}
	if parent == "" {
		g.roots = append(g.roots, key)
	} else {
		p := g.nodes[parent]
		p.Children = append(p.Children, key)
	}
	return key, nil
}

// AddContainer adds a container node under the given parent key (empty for a
// top-level container) and returns its arena key.
func (g *Graph) AddContainer(parent, id string) (string, error) {
	return g.add(parent, id, nil)
}

// AddLeaf adds a leaf node with the given payload under the parent key and
// returns its arena key. The payload must not be nil.
func (g *Graph) AddLeaf(parent, id string, payload Payload) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("leaf node %q requires a payload", id)
	}
	return g.add(parent, id, payload)
}

// AddDependency records that node `to` depends on node `from`. Both nodes
// must exist; self-references are rejected.
func (g *Graph) AddDependency(from, to string) error {
	if from == to {
		return fmt.Errorf("self-referential dependency not allowed: %s", from)
	}
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("dependency source not found: %s", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("dependency target not found: %s", to)
	}
	g.deps[to] = append(g.deps[to], from)
	return nil
}

// Node returns the node for the given arena key, or nil.
func (g *Graph) Node(key string) *Node {
	return g.nodes[key]
}

// Dependencies returns the ordered keys the given node depends on.
func (g *Graph) Dependencies(key string) []string {
	return g.deps[key]
}

// Path returns the structured path of a node: the sequence of ids from the
// root down to the node. A pure walk over parent keys, no pointers chased.
func (g *Graph) Path(key string) nodeid.Path {
	n, ok := g.nodes[key]
	if !ok {
		return nil
	}
	// The key already encodes the path, but segment ids are authoritative.
	segments := make([]string, 0, strings.Count(key, "/")+1)
	for n != nil {
		segments = append(segments, n.ID)
		if n.Parent == "" {
			break
		}
		n = g.nodes[n.Parent]
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return nodeid.Path(segments)
}

// Sections returns the top-level containers in declaration order, as the
// Section views the compiler consumes.
func (g *Graph) Sections() []Section {
	sections := make([]Section, 0, len(g.roots))
	for _, key := range g.roots {
		sections = append(sections, &Container{graph: g, key: key})
	}
	return sections
}
