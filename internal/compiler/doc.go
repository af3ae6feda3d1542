// Package compiler turns a layered deployment graph into a concrete staged
// pipeline plan. It chunks each top-level container's tranches into
// capacity-bounded stages, assigns intra-stage run orders, dispatches every
// leaf node to an action producer, and maintains the per-category shared
// resource cache and the self-mutation barrier across the single-pass walk.
//
// Compilation is single-threaded and non-reentrant: Compile may be invoked
// at most once per Compiler instance, and any dispatch or production
// failure aborts the whole compile without exposing a partial plan.
package compiler
