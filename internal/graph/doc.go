// Package graph models the deployment dependency structure the compiler
// consumes: an arena of nodes addressed by stable string keys, with parents
// stored as keys rather than back-pointers so ancestor computation is a pure
// walk over indices. Containers group nodes; leaves carry a typed payload
// describing the schedulable unit. Each top-level container can layer its
// leaves into tranches: ordered sets of nodes with no dependency edges among
// them, eligible for same-position concurrent execution.
package graph
