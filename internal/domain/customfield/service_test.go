package customfield

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/nsitapara/stellarcare/internal/platform/validation"
)

// -- Mock Definition Repository --

type mockDefinitionRepo struct {
	defs        map[uuid.UUID]*Definition
	assignments map[uuid.UUID]map[uuid.UUID]bool
	assignCalls int
}

func newMockDefinitionRepo() *mockDefinitionRepo {
	return &mockDefinitionRepo{
		defs:        make(map[uuid.UUID]*Definition),
		assignments: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (m *mockDefinitionRepo) Create(_ context.Context, d *Definition) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.ModifiedAt = d.CreatedAt
	m.defs[d.ID] = d
	return nil
}

func (m *mockDefinitionRepo) GetByID(_ context.Context, id uuid.UUID) (*Definition, error) {
	d, ok := m.defs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (m *mockDefinitionRepo) Update(_ context.Context, d *Definition) error {
	if _, ok := m.defs[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.defs[d.ID] = d
	return nil
}

func (m *mockDefinitionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.defs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.defs, id)
	delete(m.assignments, id)
	return nil
}

func (m *mockDefinitionRepo) List(_ context.Context) ([]*Definition, error) {
	var result []*Definition
	for _, d := range m.defs {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// AssignToUser mirrors ON CONFLICT DO NOTHING: repeat assignments succeed
// without duplicating anything.
func (m *mockDefinitionRepo) AssignToUser(_ context.Context, defID, userID uuid.UUID) error {
	m.assignCalls++
	if m.assignments[defID] == nil {
		m.assignments[defID] = make(map[uuid.UUID]bool)
	}
	m.assignments[defID][userID] = true
	return nil
}

func (m *mockDefinitionRepo) UnassignFromUser(_ context.Context, defID, userID uuid.UUID) error {
	delete(m.assignments[defID], userID)
	return nil
}

func (m *mockDefinitionRepo) ListAssigned(_ context.Context, userID uuid.UUID) ([]*Definition, error) {
	var result []*Definition
	for defID, users := range m.assignments {
		if users[userID] {
			result = append(result, m.defs[defID])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func newTestService(repo *mockDefinitionRepo) *Service {
	return NewService(repo, zerolog.Nop())
}

// -- Tests --

func TestCreateDefinition_AutoAssignsCreator(t *testing.T) {
	repo := newMockDefinitionRepo()
	svc := newTestService(repo)
	creator := uuid.New()

	d := &Definition{Name: "BMI", Type: FieldTypeNumber}
	if err := svc.CreateDefinition(context.Background(), d, creator); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.assignments[d.ID][creator] {
		t.Error("expected the new definition assigned to its creator")
	}
}

func TestCreateDefinition_Validation(t *testing.T) {
	svc := newTestService(newMockDefinitionRepo())

	err := svc.CreateDefinition(context.Background(), &Definition{Type: FieldTypeText}, uuid.New())
	verr, ok := err.(*validation.Error)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, present := verr.Fields["name"]; !present {
		t.Error("expected name error")
	}

	err = svc.CreateDefinition(context.Background(), &Definition{Name: "X", Type: "boolean"}, uuid.New())
	if _, ok := err.(*validation.Error); !ok {
		t.Fatalf("expected validation error for bad type, got %v", err)
	}
}

func TestAssign_Idempotent(t *testing.T) {
	repo := newMockDefinitionRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	userID := uuid.New()

	d := &Definition{Name: "Epworth Score", Type: FieldTypeNumber}
	svc.CreateDefinition(ctx, d, uuid.New())

	if err := svc.AssignToUser(ctx, d.ID, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AssignToUser(ctx, d.ID, userID); err != nil {
		t.Fatalf("repeat assignment must succeed: %v", err)
	}

	assigned, _ := svc.ListAssigned(ctx, userID)
	if len(assigned) != 1 {
		t.Errorf("expected exactly 1 assignment, got %d", len(assigned))
	}
}

func TestUnassign(t *testing.T) {
	repo := newMockDefinitionRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	userID := uuid.New()

	d := &Definition{Name: "Notes", Type: FieldTypeText}
	svc.CreateDefinition(ctx, d, userID)

	if err := svc.UnassignFromUser(ctx, d.ID, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assigned, _ := svc.ListAssigned(ctx, userID)
	if len(assigned) != 0 {
		t.Errorf("expected no assignments, got %d", len(assigned))
	}
}

func TestListDefinitions_Ordering(t *testing.T) {
	repo := newMockDefinitionRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	creator := uuid.New()

	svc.CreateDefinition(ctx, &Definition{Name: "Zeta", Type: FieldTypeText, DisplayOrder: 0}, creator)
	svc.CreateDefinition(ctx, &Definition{Name: "Alpha", Type: FieldTypeText, DisplayOrder: 0}, creator)
	svc.CreateDefinition(ctx, &Definition{Name: "First", Type: FieldTypeText, DisplayOrder: -1}, creator)

	defs, err := svc.ListDefinitions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}
	if defs[0].Name != "First" || defs[1].Name != "Alpha" || defs[2].Name != "Zeta" {
		t.Errorf("expected display_order then name ordering, got %s %s %s",
			defs[0].Name, defs[1].Name, defs[2].Name)
	}
}

func TestParseFieldType(t *testing.T) {
	if _, err := ParseFieldType("text"); err != nil {
		t.Errorf("text must parse: %v", err)
	}
	if _, err := ParseFieldType("number"); err != nil {
		t.Errorf("number must parse: %v", err)
	}
	if _, err := ParseFieldType("boolean"); err == nil {
		t.Error("boolean must not parse")
	}
}

func TestValueJSON(t *testing.T) {
	text := TextValue("hello")
	b, _ := text.MarshalJSON()
	if string(b) != `"hello"` {
		t.Errorf("expected bare string, got %s", b)
	}

	num := NumberValue(42.5)
	b, _ = num.MarshalJSON()
	if string(b) != "42.5" {
		t.Errorf("expected bare number, got %s", b)
	}
}
