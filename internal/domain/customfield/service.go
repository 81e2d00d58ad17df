package customfield

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nsitapara/stellarcare/internal/platform/validation"
)

type Service struct {
	repo   DefinitionRepository
	logger zerolog.Logger
}

func NewService(repo DefinitionRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) validate(d *Definition) error {
	v := validation.New()
	if d.Name == "" {
		v.Add("name", "this field is required")
	}
	if _, err := ParseFieldType(string(d.Type)); err != nil {
		v.Add("type", "must be one of: text, number")
	}
	return v.ErrOrNil()
}

// CreateDefinition creates a catalog entry and assigns it to the creating
// user in the same request. Assignment failures are logged and propagated.
func (s *Service) CreateDefinition(ctx context.Context, d *Definition, creatorID uuid.UUID) error {
	if err := s.validate(d); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return err
	}
	if err := s.repo.AssignToUser(ctx, d.ID, creatorID); err != nil {
		s.logger.Error().Err(err).
			Str("definition_id", d.ID.String()).
			Str("user_id", creatorID.String()).
			Msg("failed to assign new custom field definition to creator")
		return err
	}
	return nil
}

func (s *Service) GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateDefinition(ctx context.Context, d *Definition) error {
	if err := s.validate(d); err != nil {
		return err
	}
	return s.repo.Update(ctx, d)
}

func (s *Service) DeleteDefinition(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListDefinitions returns all definitions ordered by display order then name.
func (s *Service) ListDefinitions(ctx context.Context) ([]*Definition, error) {
	return s.repo.List(ctx)
}

// AssignToUser idempotently adds the definition to the user's permitted set.
func (s *Service) AssignToUser(ctx context.Context, defID, userID uuid.UUID) error {
	if err := s.repo.AssignToUser(ctx, defID, userID); err != nil {
		s.logger.Error().Err(err).
			Str("definition_id", defID.String()).
			Str("user_id", userID.String()).
			Msg("failed to assign custom field definition")
		return err
	}
	return nil
}

// UnassignFromUser idempotently removes the definition from the user's
// permitted set.
func (s *Service) UnassignFromUser(ctx context.Context, defID, userID uuid.UUID) error {
	if err := s.repo.UnassignFromUser(ctx, defID, userID); err != nil {
		s.logger.Error().Err(err).
			Str("definition_id", defID.String()).
			Str("user_id", userID.String()).
			Msg("failed to unassign custom field definition")
		return err
	}
	return nil
}

// ListAssigned returns the user's permitted definitions ordered by display
// order then name.
func (s *Service) ListAssigned(ctx context.Context, userID uuid.UUID) ([]*Definition, error) {
	return s.repo.ListAssigned(ctx, userID)
}
