package patient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nsitapara/stellarcare/internal/domain/customfield"
	"github.com/nsitapara/stellarcare/internal/platform/validation"
)

// DefinitionResolver resolves custom-field definitions during aggregate
// writes. Satisfied by customfield.DefinitionRepository.
type DefinitionResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*customfield.Definition, error)
}

// TxRunner wraps an aggregate write in a transaction. Production wiring
// passes a closure over db.RunInTx; tests pass PassthroughTx.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// PassthroughTx runs the function without a transaction boundary.
func PassthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type Service struct {
	repo   Repository
	defs   DefinitionResolver
	runTx  TxRunner
	strict bool
}

// NewService builds the patient aggregate service. strict controls the
// policy for custom-field entries naming an unknown definition: skip
// silently (the default, tolerant of stale client payloads) or reject the
// whole write with a field-keyed error.
func NewService(repo Repository, defs DefinitionResolver, runTx TxRunner, strict bool) *Service {
	return &Service{repo: repo, defs: defs, runTx: runTx, strict: strict}
}

func validateCreate(in *CreateInput) (Status, error) {
	v := validation.New()
	if in.First == "" {
		v.Add("first", "this field is required")
	}
	if in.Last == "" {
		v.Add("last", "this field is required")
	}
	if in.DateOfBirth.IsZero() {
		v.Add("date_of_birth", "this field is required")
	}
	status, err := ParseStatus(in.Status)
	if err != nil {
		v.Add("status", "must be one of: Inquiry, Onboarding, Active, Churned")
	}
	return status, v.ErrOrNil()
}

// Create builds the aggregate in a single transaction: patient row, fresh
// address rows, custom-field values and relation attachments commit or
// abort together. Validation failures abort before any row is written.
func (s *Service) Create(ctx context.Context, in *CreateInput) (*Patient, error) {
	status, err := validateCreate(in)
	if err != nil {
		return nil, err
	}

	p := &Patient{
		First:       in.First,
		Middle:      in.Middle,
		Last:        in.Last,
		DateOfBirth: in.DateOfBirth,
		Status:      status,
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		if err := s.repo.ReplaceAddresses(ctx, p.ID, in.Addresses); err != nil {
			return err
		}
		if err := s.applyCustomFields(ctx, p.ID, in.CustomFields); err != nil {
			return err
		}
		relations := map[RelationKind][]uuid.UUID{
			RelationStudies:      in.Studies,
			RelationTreatments:   in.Treatments,
			RelationInsurance:    in.Insurance,
			RelationAppointments: in.Appointments,
		}
		for kind, ids := range relations {
			if len(ids) == 0 {
				continue
			}
			if err := s.repo.ReplaceRelation(ctx, p.ID, kind, ids); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, p.ID)
}

// Update overwrites scalar fields and rebuilds the owned associations. The
// address set is always replaced with the supplied list, even when empty.
// Custom-field values are only replaced when a non-empty list is supplied;
// the asymmetry mirrors the established API contract and is intentional.
func (s *Service) Update(ctx context.Context, id int, in *UpdateInput) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := validation.New()
	if in.First != nil {
		if *in.First == "" {
			v.Add("first", "this field may not be blank")
		}
		p.First = *in.First
	}
	if in.Middle != nil {
		p.Middle = in.Middle
	}
	if in.Last != nil {
		if *in.Last == "" {
			v.Add("last", "this field may not be blank")
		}
		p.Last = *in.Last
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = *in.DateOfBirth
	}
	if in.Status != nil {
		status, err := ParseStatus(*in.Status)
		if err != nil {
			v.Add("status", "must be one of: Inquiry, Onboarding, Active, Churned")
		} else {
			p.Status = status
		}
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		if err := s.repo.ReplaceAddresses(ctx, p.ID, in.Addresses); err != nil {
			return err
		}
		if len(in.CustomFields) > 0 {
			if err := s.repo.DeleteCustomFieldValues(ctx, p.ID); err != nil {
				return err
			}
			if err := s.applyCustomFields(ctx, p.ID, in.CustomFields); err != nil {
				return err
			}
		}
		relations := map[RelationKind]*[]uuid.UUID{
			RelationStudies:      in.Studies,
			RelationTreatments:   in.Treatments,
			RelationInsurance:    in.Insurance,
			RelationAppointments: in.Appointments,
		}
		for kind, ids := range relations {
			if ids == nil {
				continue // omitted set: leave the relation untouched
			}
			if err := s.repo.ReplaceRelation(ctx, p.ID, kind, *ids); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, p.ID)
}

// applyCustomFields resolves each entry against its definition and stores
// the value in the slot the definition's declared type names. Entries naming
// an unknown definition are skipped by policy (stale client payloads must
// not fail the patient write) unless strict mode is on; entries with an
// absent or empty value are skipped rather than stored as null. Only a
// missing row counts as unknown, any other resolver failure aborts the write.
func (s *Service) applyCustomFields(ctx context.Context, patientID int, inputs []CustomFieldInput) error {
	for _, in := range inputs {
		def, err := s.defs.GetByID(ctx, in.DefinitionID)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			if s.strict {
				return validation.Single("custom_fields",
					fmt.Sprintf("unknown custom field definition: %s", in.DefinitionID))
			}
			continue
		}

		v := &CustomFieldValue{PatientID: patientID, FieldDefinitionID: def.ID}
		switch def.Type {
		case customfield.FieldTypeText:
			if in.ValueText == nil || *in.ValueText == "" {
				continue
			}
			v.ValueText = in.ValueText
		case customfield.FieldTypeNumber:
			switch {
			case in.ValueNumber != nil:
				v.ValueNumber = in.ValueNumber
			case in.ValueText != nil && *in.ValueText != "":
				f, err := strconv.ParseFloat(*in.ValueText, 64)
				if err != nil {
					return validation.Single("custom_fields", "invalid value for a number field")
				}
				v.ValueNumber = &f
			default:
				continue
			}
		default:
			continue
		}

		if err := s.repo.CreateCustomFieldValue(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, []*Patient{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List returns one page of patients newest-created-first, with associations
// hydrated in batch queries rather than per row.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := s.hydrate(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search returns the full match set, unpaginated. An all-digit query is an
// exact ID match only; anything else matches first, middle or last name
// case-insensitively.
func (s *Service) Search(ctx context.Context, q string) ([]*Patient, error) {
	if q == "" {
		return nil, validation.Single("q", "query parameter 'q' is required")
	}

	var (
		items []*Patient
		err   error
	)
	if id, ok := numericID(q); ok {
		items, err = s.repo.SearchByID(ctx, id)
	} else {
		items, err = s.repo.SearchByName(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// numericID reports whether q consists only of digits and fits in an int.
// A sign prefix or an overflowing digit run is a name query, not an ID.
func numericID(q string) (int, bool) {
	for _, r := range q {
		if !unicode.IsDigit(r) {
			return 0, false
		}
	}
	id, err := strconv.Atoi(q)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ListCustomFieldValues returns the patient's value entries with their
// definitions joined in.
func (s *Service) ListCustomFieldValues(ctx context.Context, patientID int) ([]CustomFieldEntry, error) {
	if _, err := s.repo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	entries, err := s.repo.CustomFieldEntriesByPatientIDs(ctx, []int{patientID})
	if err != nil {
		return nil, err
	}
	result := entries[patientID]
	if result == nil {
		result = []CustomFieldEntry{}
	}
	return result, nil
}

// hydrate fills the association slices for a batch of patients with one
// query per association kind.
func (s *Service) hydrate(ctx context.Context, patients []*Patient) error {
	ids := make([]int, len(patients))
	for i, p := range patients {
		ids[i] = p.ID
	}

	addrs, err := s.repo.AddressesByPatientIDs(ctx, ids)
	if err != nil {
		return err
	}
	entries, err := s.repo.CustomFieldEntriesByPatientIDs(ctx, ids)
	if err != nil {
		return err
	}
	relations := make(map[RelationKind]map[int][]uuid.UUID, len(RelationKinds))
	for _, kind := range RelationKinds {
		rel, err := s.repo.RelationIDsByPatientIDs(ctx, ids, kind)
		if err != nil {
			return err
		}
		relations[kind] = rel
	}

	for _, p := range patients {
		p.Addresses = addrs[p.ID]
		if p.Addresses == nil {
			p.Addresses = []Address{}
		}
		p.PatientCustomFields = entries[p.ID]
		if p.PatientCustomFields == nil {
			p.PatientCustomFields = []CustomFieldEntry{}
		}
		p.Studies = orEmpty(relations[RelationStudies][p.ID])
		p.Treatments = orEmpty(relations[RelationTreatments][p.ID])
		p.Insurance = orEmpty(relations[RelationInsurance][p.ID])
		p.Appointments = orEmpty(relations[RelationAppointments][p.ID])
	}
	return nil
}

func orEmpty(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
