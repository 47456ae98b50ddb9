package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a referenced id or key is absent where an
// operation requires existence.
var ErrNotFound = errors.New("record not found")

// ValidationError reports caller input violating a required-field or shape
// constraint. It is always raised before storage is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// StorageError wraps a failure of the backing store. The capability-absent
// degraded mode never produces one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
