package store

import (
	"errors"
)

// Failure kinds the transport layer needs to tell apart. Lookup misses on
// entity-identified operations are ErrNotFound; list operations never return
// it for empty results.
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already used")
	ErrUsernameTaken = errors.New("username already used")
)
