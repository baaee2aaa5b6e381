package store

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError is returned when a set id is unknown or expired
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recommendation set %s not found", e.ID)
}

// StorageError wraps a backend failure
type StorageError struct {
	Op      string
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("store %s: %s", e.Op, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
