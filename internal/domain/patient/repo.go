package patient

import (
	"context"

	"github.com/google/uuid"
)

// RelationKind names one of the patient record relations.
type RelationKind string

const (
	RelationStudies      RelationKind = "studies"
	RelationTreatments   RelationKind = "treatments"
	RelationInsurance    RelationKind = "insurance"
	RelationAppointments RelationKind = "appointments"
)

// RelationKinds lists every patient record relation, in the order the
// aggregate exposes them.
var RelationKinds = []RelationKind{
	RelationStudies, RelationTreatments, RelationInsurance, RelationAppointments,
}

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	SearchByID(ctx context.Context, id int) ([]*Patient, error)
	SearchByName(ctx context.Context, q string) ([]*Patient, error)

	ReplaceAddresses(ctx context.Context, patientID int, addrs []AddressInput) error
	AddressesByPatientIDs(ctx context.Context, ids []int) (map[int][]Address, error)

	CreateCustomFieldValue(ctx context.Context, v *CustomFieldValue) error
	DeleteCustomFieldValues(ctx context.Context, patientID int) error
	CustomFieldEntriesByPatientIDs(ctx context.Context, ids []int) (map[int][]CustomFieldEntry, error)

	ReplaceRelation(ctx context.Context, patientID int, kind RelationKind, ids []uuid.UUID) error
	RelationIDsByPatientIDs(ctx context.Context, ids []int, kind RelationKind) (map[int][]uuid.UUID, error)
}
