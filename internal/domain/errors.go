package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrBookNotFound       = errors.New("book not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrTagHasChildren     = errors.New("tag has children")
	ErrNotWritable        = errors.New("file is not writable")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrPathNotFound       = errors.New("path not found")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PathError reports a failed path resolution: the full path attempted and
// the first segment that did not match.
type PathError struct {
	Path    string
	Segment string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path not found: %s (no such entry %q)", e.Path, e.Segment)
}

func (e *PathError) Is(target error) bool {
	return target == ErrPathNotFound
}

// WriteError represents a rejected write to a file node
type WriteError struct {
	Path   string
	Reason string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %s", e.Path, e.Reason)
}

func (e *WriteError) Is(target error) bool {
	return target == ErrNotWritable
}
