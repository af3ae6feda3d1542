// Package producers defines the action-producer contract the compiler
// invokes for every scheduled leaf node, plus the standard producers for
// scripted builds, manual approvals, change-set handling, asset publication
// and pipeline self-update. Producers receive a compile-time Context (stage,
// action name, run order, shared-resource accessor, self-mutation barrier,
// fallback artifact) and report how many ordering slots they consumed.
package producers
