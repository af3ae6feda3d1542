package compiler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stageforge/internal/graph"
)

// makeTranche builds a tranche of n distinct leaf stand-ins.
func makeTranche(label string, n int) graph.Tranche {
	tr := make(graph.Tranche, n)
	for i := range tr {
		key := fmt.Sprintf("%s/%d", label, i)
		tr[i] = &graph.Node{ID: fmt.Sprintf("%d", i), Key: key, Payload: graph.SelfUpdatePayload{}}
	}
	return tr
}

func chunkLeafCount(chunk []graph.Tranche) int {
	total := 0
	for _, tr := range chunk {
		total += len(tr)
	}
	return total
}

func flatten(chunks [][]graph.Tranche) []*graph.Node {
	var nodes []*graph.Node
	for _, chunk := range chunks {
		for _, tr := range chunk {
			nodes = append(nodes, tr...)
		}
	}
	return nodes
}

func TestChunkTranches(t *testing.T) {
	t.Run("splits only when a tranche exceeds remaining capacity", func(t *testing.T) {
		// 30 fits; 25 does not fully fit (remaining 20) and is split 20/5.
		chunks := chunkTranches(50, []graph.Tranche{makeTranche("a", 30), makeTranche("b", 25)})
		require.Len(t, chunks, 2)
		assert.Equal(t, 50, chunkLeafCount(chunks[0]))
		assert.Equal(t, 5, chunkLeafCount(chunks[1]))
		require.Len(t, chunks[0], 2)
		assert.Len(t, chunks[0][1], 20)
		require.Len(t, chunks[1], 1)
		assert.Len(t, chunks[1][0], 5)
	})

	t.Run("under-capacity input stays in one group", func(t *testing.T) {
		chunks := chunkTranches(50, []graph.Tranche{makeTranche("a", 4), makeTranche("b", 6)})
		require.Len(t, chunks, 1)
		assert.Equal(t, 10, chunkLeafCount(chunks[0]))
	})

	t.Run("exact fill closes the group without splitting", func(t *testing.T) {
		chunks := chunkTranches(50, []graph.Tranche{makeTranche("a", 30), makeTranche("b", 20), makeTranche("c", 5)})
		require.Len(t, chunks, 2)
		require.Len(t, chunks[0], 2)
		assert.Len(t, chunks[0][1], 20)
		assert.Equal(t, 5, chunkLeafCount(chunks[1]))
	})

	t.Run("oversized single tranche splits repeatedly", func(t *testing.T) {
		chunks := chunkTranches(50, []graph.Tranche{makeTranche("a", 120)})
		require.Len(t, chunks, 3)
		assert.Equal(t, 50, chunkLeafCount(chunks[0]))
		assert.Equal(t, 50, chunkLeafCount(chunks[1]))
		assert.Equal(t, 20, chunkLeafCount(chunks[2]))
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, chunkTranches(50, nil))
	})

	t.Run("empty tranches are dropped", func(t *testing.T) {
		chunks := chunkTranches(50, []graph.Tranche{{}, makeTranche("a", 3), {}})
		require.Len(t, chunks, 1)
		assert.Equal(t, 3, chunkLeafCount(chunks[0]))
	})

	t.Run("order is fully preserved for any capacity", func(t *testing.T) {
		tranches := []graph.Tranche{
			makeTranche("a", 7), makeTranche("b", 1), makeTranche("c", 13),
			makeTranche("d", 5), makeTranche("e", 9),
		}
		var want []*graph.Node
		for _, tr := range tranches {
			want = append(want, tr...)
		}

		for capacity := 1; capacity <= 40; capacity++ {
			chunks := chunkTranches(capacity, tranches)
			for _, chunk := range chunks {
				assert.LessOrEqual(t, chunkLeafCount(chunk), capacity, "capacity %d", capacity)
			}
			assert.Equal(t, want, flatten(chunks), "capacity %d", capacity)
		}
	})
}
