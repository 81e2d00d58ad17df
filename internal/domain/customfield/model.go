package customfield

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FieldType is the declared type of a custom field definition.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
)

// ParseFieldType validates a wire value against the known field types.
func ParseFieldType(s string) (FieldType, error) {
	switch FieldType(s) {
	case FieldTypeText, FieldTypeNumber:
		return FieldType(s), nil
	}
	return "", fmt.Errorf("invalid field type: %q", s)
}

// Definition is a catalog entry describing a dynamically typed patient
// attribute. Definitions are global, not per-patient.
type Definition struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Type         FieldType       `db:"type" json:"type"`
	Description  *string         `db:"description" json:"description,omitempty"`
	Options      json.RawMessage `db:"options" json:"options,omitempty"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	IsRequired   bool            `db:"is_required" json:"is_required"`
	DisplayOrder int             `db:"display_order" json:"display_order"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ModifiedAt   time.Time       `db:"modified_at" json:"modified_at"`
}

// Value is the tagged variant held by one patient custom-field row: either
// text or a number, keyed by the owning definition's declared type.
type Value struct {
	Kind   FieldType
	Text   string
	Number float64
}

func TextValue(s string) Value {
	return Value{Kind: FieldTypeText, Text: s}
}

func NumberValue(f float64) Value {
	return Value{Kind: FieldTypeNumber, Number: f}
}

// MarshalJSON emits the bare payload: a JSON string for text values and a
// JSON number for numeric values.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FieldTypeText:
		return json.Marshal(v.Text)
	case FieldTypeNumber:
		return json.Marshal(v.Number)
	}
	return []byte("null"), nil
}
