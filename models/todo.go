package models

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

type Todo struct {
	ID          uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsDone      bool      `json:"isDone"`
}

// TodoPatch holds the fields a partial update may overwrite.
// A nil pointer or unset OptionalString leaves the column untouched.
type TodoPatch struct {
	Title       *string
	Description OptionalString
	IsDone      *bool
}

func (p TodoPatch) Empty() bool {
	return p.Title == nil && !p.Description.Set && p.IsDone == nil
}

// OptionalString tells apart a JSON key that was omitted from one that was
// sent as null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
