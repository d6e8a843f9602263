package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/policy"
)

func runAuthorize(op policy.Operation, claims *domain.Claims) (int, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(ClaimsKey, claims)
	}

	called := false
	h := Authorize(op)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, called
}

func TestAuthorize_Allows(t *testing.T) {
	code, called := runAuthorize(policy.AdminDashboard, &domain.Claims{UserID: "a", Role: domain.RoleAdmin})
	if !called || code != http.StatusOK {
		t.Fatalf("expected admin to pass, code=%d", code)
	}
}

func TestAuthorize_WrongRole(t *testing.T) {
	code, called := runAuthorize(policy.AdminDashboard, &domain.Claims{UserID: "u", Role: domain.RoleUser})
	if called {
		t.Fatal("next must not run for the wrong role")
	}
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestAuthorize_MissingClaims(t *testing.T) {
	code, called := runAuthorize(policy.UserSubmitRating, nil)
	if called || code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, code=%d", code)
	}
}

func TestAuthorize_PublicWithoutClaims(t *testing.T) {
	code, called := runAuthorize(policy.ListStores, nil)
	if !called || code != http.StatusOK {
		t.Fatalf("public operation must pass, code=%d", code)
	}
}

func TestAuthorize_UnknownOperation(t *testing.T) {
	code, called := runAuthorize(policy.Operation("admin.delete_everything"), &domain.Claims{Role: domain.RoleAdmin})
	if called || code != http.StatusForbidden {
		t.Fatalf("unknown operation must be denied, code=%d", code)
	}
}
