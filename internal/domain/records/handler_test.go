package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/nsitapara/stellarcare/pkg/types"
)

// -- Mock Records Repository --

type mockRecordsRepo struct {
	studies    map[uuid.UUID]*SleepStudy
	treatments map[uuid.UUID]*Treatment
	insurance  map[uuid.UUID]*Insurance
	visits     map[uuid.UUID]*Visit
}

func newMockRecordsRepo() *mockRecordsRepo {
	return &mockRecordsRepo{
		studies:    make(map[uuid.UUID]*SleepStudy),
		treatments: make(map[uuid.UUID]*Treatment),
		insurance:  make(map[uuid.UUID]*Insurance),
		visits:     make(map[uuid.UUID]*Visit),
	}
}

func (m *mockRecordsRepo) CreateSleepStudy(_ context.Context, s *SleepStudy) error {
	s.ID = uuid.New()
	m.studies[s.ID] = s
	return nil
}

func (m *mockRecordsRepo) GetSleepStudy(_ context.Context, id uuid.UUID) (*SleepStudy, error) {
	s, ok := m.studies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (m *mockRecordsRepo) CreateTreatment(_ context.Context, t *Treatment) error {
	t.ID = uuid.New()
	m.treatments[t.ID] = t
	return nil
}

func (m *mockRecordsRepo) GetTreatment(_ context.Context, id uuid.UUID) (*Treatment, error) {
	t, ok := m.treatments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (m *mockRecordsRepo) CreateInsurance(_ context.Context, i *Insurance) error {
	i.ID = uuid.New()
	m.insurance[i.ID] = i
	return nil
}

func (m *mockRecordsRepo) GetInsurance(_ context.Context, id uuid.UUID) (*Insurance, error) {
	i, ok := m.insurance[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return i, nil
}

func (m *mockRecordsRepo) CreateVisit(_ context.Context, v *Visit) error {
	v.ID = uuid.New()
	m.visits[v.ID] = v
	return nil
}

func (m *mockRecordsRepo) GetVisit(_ context.Context, id uuid.UUID) (*Visit, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return v, nil
}

func (m *mockRecordsRepo) ListIDs(_ context.Context, kind string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	switch kind {
	case "sleep_studies":
		for id := range m.studies {
			ids = append(ids, id)
		}
	case "treatments":
		for id := range m.treatments {
			ids = append(ids, id)
		}
	case "insurance":
		for id := range m.insurance {
			ids = append(ids, id)
		}
	case "visits":
		for id := range m.visits {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func newTestHandler() (*Handler, *mockRecordsRepo, *echo.Echo) {
	repo := newMockRecordsRepo()
	return NewHandler(NewService(repo)), repo, echo.New()
}

func getDetail(e *echo.Echo, handler echo.HandlerFunc, id string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return rec, handler(c)
}

func TestHandler_GetVisit(t *testing.T) {
	h, repo, e := newTestHandler()

	v := &Visit{
		Date:   types.NewDate(2026, time.March, 14),
		Time:   "09:30:00",
		Type:   VisitTelehealth,
		Status: VisitScheduled,
	}
	repo.CreateVisit(context.Background(), v)

	rec, err := getDetail(e, h.GetVisit, v.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got Visit
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Time != "09:30:00" || got.Type != VisitTelehealth {
		t.Errorf("unexpected visit %+v", got)
	}
}

func TestHandler_GetTreatment(t *testing.T) {
	h, repo, e := newTestHandler()

	tr := &Treatment{Name: "CPAP Therapy", Type: "Device", Dosage: "10 cm H2O",
		Frequency: "Nightly", StartDate: types.NewDate(2025, time.June, 1)}
	repo.CreateTreatment(context.Background(), tr)

	rec, err := getDetail(e, h.GetTreatment, tr.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got Treatment
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Name != "CPAP Therapy" {
		t.Errorf("unexpected treatment %+v", got)
	}
	if got.EndDate != nil {
		t.Error("expected null end_date")
	}
}

func TestHandler_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	handlers := map[string]echo.HandlerFunc{
		"appointment": h.GetVisit,
		"treatment":   h.GetTreatment,
		"sleep study": h.GetSleepStudy,
		"insurance":   h.GetInsurance,
	}
	for name, fn := range handlers {
		_, err := getDetail(e, fn, uuid.NewString())
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404 for unknown id, got %v", name, err)
		}

		_, err = getDetail(e, fn, "not-a-uuid")
		he, ok = err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404 for malformed id, got %v", name, err)
		}
	}
}
