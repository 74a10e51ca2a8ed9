package model

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// OptionalID is a nullable reference that also remembers whether it was
// supplied at all: absent (Set=false), explicit null (Set=true, Value=nil)
// or a concrete id.
type OptionalID struct {
	Set   bool
	Value *uuid.UUID
}

// SomeID returns a supplied, non-null OptionalID.
func SomeID(id uuid.UUID) OptionalID {
	return OptionalID{Set: true, Value: &id}
}

// NullID returns a supplied, explicitly null OptionalID.
func NullID() OptionalID {
	return OptionalID{Set: true}
}

// UnmarshalJSON is only invoked when the key is present in the payload.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// MarshalJSON renders the id or null.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value.String())
}
