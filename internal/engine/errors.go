// Package engine implements the thought-sequence engine: the in-memory
// thought store, submission validation, the verification tracker, bounded
// eviction, and the façade that orchestrates them against durable storage.
package engine

import "fmt"

// ValidationError reports a malformed or logically inconsistent submission.
// The submission never mutates state when validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced sequence, thought, or hypothesis that
// does not exist.
type NotFoundError struct {
	Kind string // "sequence", "thought", "hypothesis"
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// LimitExceededError reports an operation that cannot proceed within the
// configured caps and is not a prune-eligible continuation.
type LimitExceededError struct {
	Limit  string
	Max    int
	Reason string
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s limit exceeded (max %d): %s", e.Limit, e.Max, e.Reason)
}

// PersistenceError reports a failed durable operation. The in-memory state
// may already hold the mutation; callers surface that as a partial success.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
