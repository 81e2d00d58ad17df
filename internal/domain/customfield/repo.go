package customfield

import (
	"context"

	"github.com/google/uuid"
)

type DefinitionRepository interface {
	Create(ctx context.Context, d *Definition) error
	GetByID(ctx context.Context, id uuid.UUID) (*Definition, error)
	Update(ctx context.Context, d *Definition) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Definition, error)

	AssignToUser(ctx context.Context, defID, userID uuid.UUID) error
	UnassignFromUser(ctx context.Context, defID, userID uuid.UUID) error
	ListAssigned(ctx context.Context, userID uuid.UUID) ([]*Definition, error)
}
