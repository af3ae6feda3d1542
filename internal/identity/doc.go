// Package identity models the mutable execution-identity resources that
// scheduled actions run as: named identities carrying policy statements.
// Identities are frozen once fully constructed; permission needs discovered
// later must be attached as a separate Attachment object, and deferred
// statements resolve their resource list only at plan finalization.
package identity
