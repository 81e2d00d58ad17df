package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func runMiddleware(t *testing.T, issuer *TokenIssuer, header string, path string, method string) (error, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Middleware(issuer, Skipper)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c), c
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := testIssuer()
	access, _ := issuer.IssueAccess("user-123", "grace")

	err, c := runMiddleware(t, issuer, "Bearer "+access, "/api/patients", http.MethodGet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := UserIDFromContext(c.Request().Context()); got != "user-123" {
		t.Errorf("expected user id on context, got %q", got)
	}
	if got := UsernameFromContext(c.Request().Context()); got != "grace" {
		t.Errorf("expected username on context, got %q", got)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	err, _ := runMiddleware(t, testIssuer(), "", "/api/patients", http.MethodGet)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	err, _ := runMiddleware(t, testIssuer(), "Token abc", "/api/patients", http.MethodGet)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_RefreshTokenRejected(t *testing.T) {
	issuer := testIssuer()
	pair, _ := issuer.IssuePair("user-123", "grace")

	err, _ := runMiddleware(t, issuer, "Bearer "+pair.Refresh, "/api/patients", http.MethodGet)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("refresh token must not pass as bearer credential, got %v", err)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	expired := NewTokenIssuer([]byte("test-secret"), -time.Minute, 24*time.Hour)
	access, _ := expired.IssueAccess("user-123", "grace")

	err, _ := runMiddleware(t, testIssuer(), "Bearer "+access, "/api/patients", http.MethodGet)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestSkipper_OpenEndpoints(t *testing.T) {
	open := []struct {
		method, path string
	}{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/api/token"},
		{http.MethodPost, "/api/token/refresh"},
		{http.MethodPost, "/api/users"},
	}
	for _, tc := range open {
		if err, _ := runMiddleware(t, testIssuer(), "", tc.path, tc.method); err != nil {
			t.Errorf("%s %s must be open, got %v", tc.method, tc.path, err)
		}
	}

	// same path, different method, stays protected
	if err, _ := runMiddleware(t, testIssuer(), "", "/api/users", http.MethodGet); err == nil {
		t.Error("GET /api/users must require a token")
	}
}
