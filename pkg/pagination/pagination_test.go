package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor("/api/patients")
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestFromContext_Clamping(t *testing.T) {
	p := paramsFor("/api/patients?page=0&page_size=-5")
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("expected clamped defaults, got %+v", p)
	}

	p = paramsFor("/api/patients?page_size=500")
	if p.PageSize != MaxPageSize {
		t.Errorf("expected page_size capped at %d, got %d", MaxPageSize, p.PageSize)
	}

	p = paramsFor("/api/patients?page=abc&page_size=xyz")
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("expected defaults for garbage input, got %+v", p)
	}
}

func TestLimitOffset(t *testing.T) {
	p := Params{Page: 3, PageSize: 25}
	if p.Limit() != 25 {
		t.Errorf("expected limit 25, got %d", p.Limit())
	}
	if p.Offset() != 50 {
		t.Errorf("expected offset 50, got %d", p.Offset())
	}
}

func TestNewResponse_Links(t *testing.T) {
	// middle page: both links
	resp := NewResponse(nil, 30, Params{Page: 2, PageSize: 10}, "/api/patients")
	if resp.Next == nil || *resp.Next != "/api/patients?page=3&page_size=10" {
		t.Errorf("unexpected next link %v", resp.Next)
	}
	if resp.Previous == nil || *resp.Previous != "/api/patients?page=1&page_size=10" {
		t.Errorf("unexpected previous link %v", resp.Previous)
	}

	// first page of one
	resp = NewResponse(nil, 5, Params{Page: 1, PageSize: 10}, "/api/patients")
	if resp.Next != nil || resp.Previous != nil {
		t.Error("single page must have no links")
	}

	// last page
	resp = NewResponse(nil, 30, Params{Page: 3, PageSize: 10}, "/api/patients")
	if resp.Next != nil {
		t.Error("last page must have no next link")
	}
	if resp.Previous == nil {
		t.Error("last page must have a previous link")
	}
}
