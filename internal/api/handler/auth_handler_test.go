package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storerating/rating-api/internal/core/domain"
	"github.com/storerating/rating-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in domain.NewUser) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in domain.NewUser) (*domain.User, error) {
			if in.Email != "alex@example.com" || in.Role != domain.RoleUser {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: in.Role, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Alexandra Montgomery-Smith","email":"alex@example.com","password":"Secret#123","address":"221B Baker Street","role":"user"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup", body), rec)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user := resp["user"]
	if user["id"] != "u1" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash must not be serialised")
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatal("password hash leaked into response")
	}
}

func TestAuthHandler_Signup_PropagatesDomainErrors(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, domain.NewUser) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup", `{"email":"bob@example.com"}`), httptest.NewRecorder())
	if err := handler.Signup(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidJSON(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup", `{"name":`), httptest.NewRecorder())
	err := handler.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "Secret#123" {
				t.Fatalf("unexpected credentials")
			}
			return &ports.LoginResult{Token: "token", ExpiresAt: expires, User: &domain.User{ID: "u1", Role: domain.RoleAdmin}}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"Secret#123"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token" || !resp.ExpiresAt.Equal(expires) || resp.User.ID != "u1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com"}`), httptest.NewRecorder())
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "password is required") {
		t.Errorf("expected message naming the field, got %q", err.Error())
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"x"}`), httptest.NewRecorder())
	if err := handler.Login(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
