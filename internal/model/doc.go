// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of the stageforge HCL
// manifest. Its core purpose is to create a strongly-typed, in-memory model
// of the user's pipeline definition by parsing the raw HCL files.
//
// # Core Concepts
//
//   - Manifest: the root container representing an entire workspace. It
//     aggregates the pipeline block, variables and all deployment groups
//     parsed from one or more .hcl files.
//
//   - Group: one top-level deployment unit, expanded into a pipeline stage
//     (or several, when its leaf count exceeds the stage capacity).
//
//   - Stack, Publish, Step: the schedulable declarations inside a group.
//     A stack expands into a prepare/deploy leaf pair, a publish block into
//     an asset-publication leaf, a step into a runner-backed leaf.
//
// Why a separate model package?
//
// The model is a critical intermediate layer: it turns free-form HCL into a
// validated, traversable Go representation before any graph is built. The
// builder consumes the Manifest to produce the node arena; the compiler
// never sees HCL at all.
package model
