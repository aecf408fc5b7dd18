// Package uuid wraps github.com/google/uuid so that resource IDs in
// route parameters can be bound with gin's uri binding.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID is a google/uuid UUID that implements gin's parameter binding.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam parses the route parameter into the UUID.
// An empty parameter binds to Nil.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
