package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nsitapara/stellarcare/pkg/pagination"
)

func newTestHandler(repo *mockPatientRepo) (*Handler, *echo.Echo) {
	h := NewHandler(newTestService(repo))
	e := echo.New()
	return h, e
}

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler(newMockPatientRepo())

	body := `{"first":"Grace","last":"Hopper","date_of_birth":"1906-12-09","status":"Active"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.First != "Grace" || p.ID < MinPatientID {
		t.Errorf("unexpected patient %+v", p)
	}
}

func TestHandler_CreatePatient_ValidationShape(t *testing.T) {
	h, e := newTestHandler(newMockPatientRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var fields map[string]string
	json.Unmarshal(rec.Body.Bytes(), &fields)
	if fields["first"] == "" || fields["last"] == "" {
		t.Errorf("expected field-keyed errors, got %v", fields)
	}
}

func TestHandler_Search_MissingQuery(t *testing.T) {
	repo := newMockPatientRepo()
	h, e := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/patients/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if repo.searchCalls != 0 {
		t.Errorf("repository must not be queried without q, got %d calls", repo.searchCalls)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Errorf("expected error message body, got %v", body)
	}
}

func TestHandler_List_PaginationEnvelope(t *testing.T) {
	repo := newMockPatientRepo()
	svc := newTestService(repo)
	for i := 0; i < 15; i++ {
		svc.Create(context.Background(), validCreateInput())
	}
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/patients?page=1&page_size=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp pagination.Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Count != 15 {
		t.Errorf("expected count 15, got %d", resp.Count)
	}
	if resp.Next == nil {
		t.Error("expected next link on first of two pages")
	}
	if resp.Previous != nil {
		t.Error("expected no previous link on first page")
	}
	results, ok := resp.Results.([]interface{})
	if !ok || len(results) != 10 {
		t.Errorf("expected 10 results in page, got %T len %d", resp.Results, len(results))
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler(newMockPatientRepo())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("100001")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Get_NonNumericID(t *testing.T) {
	h, e := newTestHandler(newMockPatientRepo())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for non-numeric id, got %v", err)
	}
}
