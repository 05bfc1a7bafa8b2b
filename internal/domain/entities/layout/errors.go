package layout

import "errors"

// Validation errors reported when a property edit is rejected. Callers use
// errors.Is; the wrapped message names the offending key and variant.
var (
	ErrUnknownProperty = errors.New("unknown property for block type")
	ErrInvalidEnum     = errors.New("value not in allowed set")
	ErrTypeMismatch    = errors.New("value has wrong type for property")
)

// Structural errors reported when a tree mutation is rejected. The input
// tree is always left untouched.
var (
	ErrDuplicateID   = errors.New("block id already present in tree")
	ErrNotFound      = errors.New("block not found in tree")
	ErrNotAContainer = errors.New("target block is not a container")
	ErrCycleDetected = errors.New("operation would make a container its own ancestor")
)
