// Package identity provides identifier generation utilities
package identity

import "github.com/oklog/ulid/v2"

// GenerateULID generates a new ULID string. Module and block rows use
// ULIDs: sortable by creation time and never reused.
func GenerateULID() string {
	return ulid.Make().String()
}
