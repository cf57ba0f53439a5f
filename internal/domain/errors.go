package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrProfileNotFound = errors.New("profile not found")

// UnknownTemplateError is returned when a template id is not registered.
type UnknownTemplateError struct {
	ID string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template: %q", e.ID)
}

// RenderError means the document could not be built or turned into a PDF.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// StorageError means the remote object write failed.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PersistenceError means a write to the structured data store failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError carries the reasons an incoming profile payload was rejected.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	msg := "invalid profile"
	for i, p := range e.Problems {
		if i == 0 {
			msg += ": " + p
			continue
		}
		msg += "; " + p
	}
	return msg
}
