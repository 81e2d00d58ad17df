package patient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nsitapara/stellarcare/internal/domain/customfield"
	"github.com/nsitapara/stellarcare/pkg/types"
)

// Status is the patient lifecycle state.
type Status string

const (
	StatusInquiry    Status = "Inquiry"
	StatusOnboarding Status = "Onboarding"
	StatusActive     Status = "Active"
	StatusChurned    Status = "Churned"
)

// ParseStatus validates a wire value against the known lifecycle states.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusInquiry, StatusOnboarding, StatusActive, StatusChurned:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid patient status: %q", s)
}

// MinPatientID is the floor of the patient identifier space. IDs are
// assigned from a database sequence and never dip below it or decrease.
const MinPatientID = 100000

// Patient is the aggregate root: the patient row plus its addresses,
// custom-field values and associated record IDs.
type Patient struct {
	ID          int        `db:"id" json:"id"`
	First       string     `db:"first" json:"first"`
	Middle      *string    `db:"middle" json:"middle"`
	Last        string     `db:"last" json:"last"`
	DateOfBirth types.Date `db:"date_of_birth" json:"date_of_birth"`
	Status      Status     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	ModifiedAt  time.Time  `db:"modified_at" json:"modified_at"`

	Addresses           []Address          `json:"addresses"`
	PatientCustomFields []CustomFieldEntry `json:"patient_custom_fields"`
	Studies             []uuid.UUID        `json:"studies"`
	Treatments          []uuid.UUID        `json:"treatments"`
	Insurance           []uuid.UUID        `json:"insurance"`
	Appointments        []uuid.UUID        `json:"appointments"`
}

// Address is a physical address. Addresses are attached to patients through
// a shared relation but in practice created fresh per submission.
type Address struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Street  string    `db:"street" json:"street"`
	City    string    `db:"city" json:"city"`
	State   string    `db:"state" json:"state"`
	ZipCode string    `db:"zip_code" json:"zip_code"`
}

// Formatted returns the human-readable single-line address.
func (a Address) Formatted() string {
	return fmt.Sprintf("%s, %s, %s, %s", a.Street, a.City, a.State, a.ZipCode)
}

func (a Address) MarshalJSON() ([]byte, error) {
	type alias Address
	return json.Marshal(struct {
		alias
		FormattedAddress string `json:"formatted_address"`
	}{alias(a), a.Formatted()})
}

// CustomFieldValue is one stored value row: type-split slots of which only
// the one matching the definition's declared type is populated.
type CustomFieldValue struct {
	ID                uuid.UUID `db:"id"`
	PatientID         int       `db:"patient_id"`
	FieldDefinitionID uuid.UUID `db:"field_definition_id"`
	ValueText         *string   `db:"value_text"`
	ValueNumber       *float64  `db:"value_number"`
	CreatedAt         time.Time `db:"created_at"`
	ModifiedAt        time.Time `db:"modified_at"`
}

// Value resolves the stored slot against the definition's current type. If
// the definition's type changed after the row was written, the row keeps its
// original slot and this accessor follows the new type, so it may report no
// value for a previously valid row. That behavior is deliberate and
// undefined rather than guarded.
func (v *CustomFieldValue) Value(def *customfield.Definition) (customfield.Value, bool) {
	switch def.Type {
	case customfield.FieldTypeText:
		if v.ValueText != nil {
			return customfield.TextValue(*v.ValueText), true
		}
	case customfield.FieldTypeNumber:
		if v.ValueNumber != nil {
			return customfield.NumberValue(*v.ValueNumber), true
		}
	}
	return customfield.Value{}, false
}

// CustomFieldEntry is the read shape of one value row with its definition
// joined in: `{id, field_definition, value}`.
type CustomFieldEntry struct {
	ID              uuid.UUID               `json:"id"`
	FieldDefinition *customfield.Definition `json:"field_definition"`
	ValueText       *string                 `json:"-"`
	ValueNumber     *float64                `json:"-"`
}

func (e CustomFieldEntry) MarshalJSON() ([]byte, error) {
	row := CustomFieldValue{ValueText: e.ValueText, ValueNumber: e.ValueNumber}
	var value interface{}
	if v, ok := row.Value(e.FieldDefinition); ok {
		value = v
	}
	return json.Marshal(struct {
		ID              uuid.UUID               `json:"id"`
		FieldDefinition *customfield.Definition `json:"field_definition"`
		Value           interface{}             `json:"value"`
	}{e.ID, e.FieldDefinition, value})
}

// AddressInput is one submitted address tuple; a fresh Address row is
// created for each.
type AddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// CustomFieldInput names a definition and carries the submitted payload in
// whichever slot the client filled.
type CustomFieldInput struct {
	DefinitionID uuid.UUID `json:"custom_field_definition_id"`
	ValueText    *string   `json:"value_text"`
	ValueNumber  *float64  `json:"value_number"`
}

// CreateInput is the patient-creation payload.
type CreateInput struct {
	First        string             `json:"first"`
	Middle       *string            `json:"middle"`
	Last         string             `json:"last"`
	DateOfBirth  types.Date         `json:"date_of_birth"`
	Status       string             `json:"status"`
	Addresses    []AddressInput     `json:"addresses"`
	CustomFields []CustomFieldInput `json:"custom_fields"`
	Studies      []uuid.UUID        `json:"studies"`
	Treatments   []uuid.UUID        `json:"treatments"`
	Insurance    []uuid.UUID        `json:"insurance"`
	Appointments []uuid.UUID        `json:"appointments"`
}

// UpdateInput is the patient-update payload. The address set is always
// rebuilt from Addresses, even when empty. CustomFields only replaces the
// stored values when non-empty. Relation sets use pointers: nil leaves the
// relation untouched, an empty slice clears it.
type UpdateInput struct {
	First        *string            `json:"first"`
	Middle       *string            `json:"middle"`
	Last         *string            `json:"last"`
	DateOfBirth  *types.Date        `json:"date_of_birth"`
	Status       *string            `json:"status"`
	Addresses    []AddressInput     `json:"addresses"`
	CustomFields []CustomFieldInput `json:"custom_fields"`
	Studies      *[]uuid.UUID       `json:"studies"`
	Treatments   *[]uuid.UUID       `json:"treatments"`
	Insurance    *[]uuid.UUID       `json:"insurance"`
	Appointments *[]uuid.UUID       `json:"appointments"`
}
