// Package nodeid models the structured identifiers of graph nodes as paths
// of segments, and derives the display names used for scheduled actions.
// Action names are path suffixes relative to a shared ancestor, with each
// segment sanitized to the character set accepted by the delivery service.
package nodeid
