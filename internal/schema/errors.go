package schema

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a schema file that is missing or unreadable.
var ErrNotFound = errors.New("schema not found")

// PathNotFoundError reports a path that does not resolve in the tree.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// DuplicatePathError reports an attempt to create a node at an occupied
// path without asking for replacement.
type DuplicatePathError struct {
	Path string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("duplicate path: %s", e.Path)
}
