package store

import (
	"errors"
	"fmt"
)

// Store errors
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnknownIndex indicates a lookup against an index name that was
	// never registered on the store.
	ErrUnknownIndex = errors.New("unknown index")
)

// DuplicateKeyError indicates an insert or update would give two entities
// the same key in a uniqueness index. The store performs no partial
// mutation when returning this error.
type DuplicateKeyError struct {
	// Index is the name of the violated uniqueness index.
	Index string

	// Key is the derived key that is already owned by another entity.
	Key string
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in index %q", e.Key, e.Index)
}
