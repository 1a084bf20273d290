package engine

import (
	"errors"
	"fmt"
)

// ErrInternal marks a broken internal invariant. Callers should report
// a generic failure rather than the detail.
var ErrInternal = errors.New("engine: internal error")

// InvariantError describes an internal invariant violation.
type InvariantError struct {
	Op     string // stage that failed, e.g. "chunk" or "segment"
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine: %s: invariant violated: %s", e.Op, e.Detail)
}

// Unwrap returns ErrInternal.
func (e *InvariantError) Unwrap() error { return ErrInternal }
