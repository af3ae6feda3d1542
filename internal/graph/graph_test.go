package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stageforge/internal/nodeid"
)

func TestAddAndPath(t *testing.T) {
	g := New()

	prod, err := g.AddContainer("", "Prod")
	require.NoError(t, err)
	db, err := g.AddContainer(prod, "db")
	require.NoError(t, err)
	prep, err := g.AddLeaf(db, "Prepare", PreparePayload{Stack: StackRef{Name: "db"}})
	require.NoError(t, err)

	assert.Equal(t, nodeid.Path{"Prod", "db", "Prepare"}, g.Path(prep))
	assert.Equal(t, "Prod/db/Prepare", prep)
	assert.True(t, g.Node(prep).IsLeaf())
	assert.False(t, g.Node(db).IsLeaf())
}

func TestAddErrors(t *testing.T) {
	g := New()
	prod, err := g.AddContainer("", "Prod")
	require.NoError(t, err)

	t.Run("duplicate id under same parent", func(t *testing.T) {
		_, err := g.AddContainer(prod, "db")
		require.NoError(t, err)
		_, err = g.AddContainer(prod, "db")
		assert.ErrorContains(t, err, "duplicate node id")
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := g.AddContainer("nope", "x")
		assert.ErrorContains(t, err, "parent node not found")
	})

	t.Run("leaf without payload", func(t *testing.T) {
		_, err := g.AddLeaf(prod, "x", nil)
		assert.ErrorContains(t, err, "requires a payload")
	})
}

func TestAddDependencyErrors(t *testing.T) {
	g := New()
	prod, _ := g.AddContainer("", "Prod")
	a, _ := g.AddLeaf(prod, "a", SelfUpdatePayload{})
	b, _ := g.AddLeaf(prod, "b", SelfUpdatePayload{})

	require.NoError(t, g.AddDependency(a, b))
	assert.ErrorContains(t, g.AddDependency(a, a), "self-referential")
	assert.ErrorContains(t, g.AddDependency("dne", b), "source not found")
	assert.ErrorContains(t, g.AddDependency(a, "dne"), "target not found")
}

func TestSectionsOrder(t *testing.T) {
	g := New()
	g.AddContainer("", "Dev")
	g.AddContainer("", "Prod")

	sections := g.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "Dev", sections[0].ID())
	assert.Equal(t, "Prod", sections[1].ID())
}

func TestSortedLeaves(t *testing.T) {
	t.Run("layers by dependencies, declaration order within tranche", func(t *testing.T) {
		g := New()
		prod, _ := g.AddContainer("", "Prod")
		a, _ := g.AddLeaf(prod, "a", PreparePayload{Stack: StackRef{Name: "a"}})
		b, _ := g.AddLeaf(prod, "b", PreparePayload{Stack: StackRef{Name: "b"}})
		c, _ := g.AddLeaf(prod, "c", ExecutePayload{Stack: StackRef{Name: "a"}})
		require.NoError(t, g.AddDependency(a, c))
		require.NoError(t, g.AddDependency(b, c))

		tranches, err := g.Sections()[0].SortedLeaves()
		require.NoError(t, err)
		require.Len(t, tranches, 2)
		assert.Equal(t, []string{"a", "b"}, trancheIDs(tranches[0]))
		assert.Equal(t, []string{"c"}, trancheIDs(tranches[1]))
	})

	t.Run("cross-section dependencies are ignored", func(t *testing.T) {
		g := New()
		dev, _ := g.AddContainer("", "Dev")
		synth, _ := g.AddLeaf(dev, "synth", SelfUpdatePayload{})
		prod, _ := g.AddContainer("", "Prod")
		deploy, _ := g.AddLeaf(prod, "deploy", PreparePayload{Stack: StackRef{Name: "x"}})
		require.NoError(t, g.AddDependency(synth, deploy))

		tranches, err := g.Sections()[1].SortedLeaves()
		require.NoError(t, err)
		require.Len(t, tranches, 1)
	})

	t.Run("cycle is reported", func(t *testing.T) {
		g := New()
		prod, _ := g.AddContainer("", "Prod")
		a, _ := g.AddLeaf(prod, "a", SelfUpdatePayload{})
		b, _ := g.AddLeaf(prod, "b", SelfUpdatePayload{})
		require.NoError(t, g.AddDependency(a, b))
		require.NoError(t, g.AddDependency(b, a))

		_, err := g.Sections()[0].SortedLeaves()
		assert.ErrorContains(t, err, "dependency cycle")
	})

	t.Run("empty container yields no tranches", func(t *testing.T) {
		g := New()
		g.AddContainer("", "Empty")
		tranches, err := g.Sections()[0].SortedLeaves()
		require.NoError(t, err)
		assert.Empty(t, tranches)
	})
}

func trancheIDs(tr Tranche) []string {
	ids := make([]string, len(tr))
	for i, n := range tr {
		ids[i] = n.ID
	}
	return ids
}
