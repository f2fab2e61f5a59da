package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ObjectID is a UUID-based surrogate identifier for an auditable object.
// The description stays the lookup key used by the stores.
type ObjectID string

// NewObjectID generates a new UUID v4 ObjectID
func NewObjectID() ObjectID {
	return ObjectID(uuid.New().String())
}

// Validate checks if the ObjectID is a well-formed UUID
func (id ObjectID) Validate() error {
	if id == "" {
		return goerr.New("object ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "object ID must be a UUID", goerr.V("id", id))
	}
	return nil
}

// String returns the string representation of ObjectID
func (id ObjectID) String() string {
	return string(id)
}
