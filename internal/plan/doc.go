// Package plan holds the compiler's output: the ordered stages of the
// delivery pipeline, each with capacity-bounded, run-order-annotated
// actions, plus the queryable aggregates (synthesis compute identity,
// pipeline handle, credential grants) that external consumers read after
// compilation has finished.
package plan
