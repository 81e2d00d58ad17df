package records

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes the clinical record lookups. Records are created through
// seeding or upstream integrations; the API surface is read-only.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetSleepStudy(ctx context.Context, id uuid.UUID) (*SleepStudy, error) {
	return s.repo.GetSleepStudy(ctx, id)
}

func (s *Service) GetTreatment(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return s.repo.GetTreatment(ctx, id)
}

func (s *Service) GetInsurance(ctx context.Context, id uuid.UUID) (*Insurance, error) {
	return s.repo.GetInsurance(ctx, id)
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.repo.GetVisit(ctx, id)
}
