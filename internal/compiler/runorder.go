package compiler

// runOrderAllocator assigns the monotonically increasing ordering token for
// each tranche within one stage. Every leaf in a tranche receives the same
// token, which is what lets them execute concurrently at the same position.
type runOrderAllocator struct {
	cursor int
}

func newRunOrderAllocator() *runOrderAllocator {
	return &runOrderAllocator{cursor: 1}
}

// Current returns the token for the tranche being walked.
func (a *runOrderAllocator) Current() int {
	return a.cursor
}

// Advance moves the cursor past a completed tranche by the maximum
// run-orders-consumed value any of its nodes reported. An empty tranche
// reports 0 and leaves the cursor untouched.
func (a *runOrderAllocator) Advance(maxConsumed int) {
	if maxConsumed < 1 {
		return
	}
	a.cursor += maxConsumed
}
