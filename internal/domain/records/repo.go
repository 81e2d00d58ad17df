package records

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores the four clinical record kinds. The detail API only
// reads; Create and ListIDs exist for the seeder and for relation
// attachment checks.
type Repository interface {
	CreateSleepStudy(ctx context.Context, s *SleepStudy) error
	GetSleepStudy(ctx context.Context, id uuid.UUID) (*SleepStudy, error)

	CreateTreatment(ctx context.Context, t *Treatment) error
	GetTreatment(ctx context.Context, id uuid.UUID) (*Treatment, error)

	CreateInsurance(ctx context.Context, i *Insurance) error
	GetInsurance(ctx context.Context, id uuid.UUID) (*Insurance, error)

	CreateVisit(ctx context.Context, v *Visit) error
	GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error)

	ListIDs(ctx context.Context, kind string) ([]uuid.UUID, error)
}
