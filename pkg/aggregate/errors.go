// File: pkg/aggregate/errors.go
package aggregate

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Kind classifies the stage at which a run failed.
type Kind int

const (
	// Traversal means a directory could not be listed.
	Traversal Kind = iota + 1
	// Read means a collected file could not be opened or read.
	Read
	// Write means the output file could not be created or written.
	Write
)

func (k Kind) String() string {
	switch k {
	case Traversal:
		return "traversal"
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is an I/O failure that aborted a run.
type Error struct {
	Kind Kind   // Stage that failed.
	Path string // Path being listed, read or written.
	Err  error  // Underlying error.
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error on %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Kind
	}
	return 0
}
