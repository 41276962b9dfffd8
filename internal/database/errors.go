package database

import (
	"errors"
	"fmt"
)

// ErrRecipeNotFound is returned when a lookup matches no row.
var ErrRecipeNotFound = errors.New("recipe not found")

// StoreError wraps a database failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
