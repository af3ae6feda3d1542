package compiler

import "github.com/vk/stageforge/internal/graph"

// chunkTranches splits an ordered tranche sequence into stage groups whose
// total leaf count never exceeds capacity. Greedy and left-to-right: node
// order is fully preserved, and a tranche is split only when it does not
// fully fit, at exactly the point where the running count would exceed
// capacity. The split-off remainder carries over as a new tranche at the
// head of the remaining sequence.
func chunkTranches(capacity int, tranches []graph.Tranche) [][]graph.Tranche {
	var chunks [][]graph.Tranche
	var current []graph.Tranche
	used := 0

	remaining := append([]graph.Tranche(nil), tranches...)
	for len(remaining) > 0 {
		tranche := remaining[0]
		if len(tranche) == 0 {
			remaining = remaining[1:]
			continue
		}

		if used == capacity {
			chunks = append(chunks, current)
			current, used = nil, 0
		}

		space := capacity - used
		if len(tranche) <= space {
			current = append(current, tranche)
			used += len(tranche)
			remaining = remaining[1:]
			continue
		}

		// Maximal prefix that fits closes the current group; the suffix is
		// treated as a new, independent tranche in the next group.
		current = append(current, tranche[:space])
		chunks = append(chunks, current)
		current, used = nil, 0
		remaining[0] = tranche[space:]
	}

	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
