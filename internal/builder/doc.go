// Package builder turns a loaded manifest into the node arena the compiler
// schedules. Each group becomes a top-level container, each stack a
// prepare/deploy leaf pair, each publish block an asset-publication leaf and
// each step a runner-backed leaf. When self-mutation is enabled, the builder
// also inserts the pipeline-update section right after the section holding
// the designated build step.
package builder
