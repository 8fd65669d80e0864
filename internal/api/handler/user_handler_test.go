package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

type stubUserService struct {
	signInFn  func(ctx context.Context, email string, profile ports.UserProfile) (*ports.SignInResult, error)
	isAdminFn func(ctx context.Context, email string) (bool, error)
	promoteFn func(ctx context.Context, email string) error
	getFn     func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubUserService) SignIn(ctx context.Context, email string, profile ports.UserProfile) (*ports.SignInResult, error) {
	return s.signInFn(ctx, email, profile)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, email string, profile ports.UserProfile) (*domain.User, error) {
	return &domain.User{Email: email}, nil
}

func (s *stubUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.isAdminFn(ctx, email)
}

func (s *stubUserService) Promote(ctx context.Context, email string) error {
	return s.promoteFn(ctx, email)
}

func (s *stubUserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.getFn(ctx, email)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }
func (s *stubUserService) Delete(ctx context.Context, id string) error      { return nil }

func TestUserHandler_SignIn_Success(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		signInFn: func(ctx context.Context, email string, profile ports.UserProfile) (*ports.SignInResult, error) {
			if email != "alice@example.com" || profile.Name != "Alice" {
				t.Fatalf("unexpected args: %s %+v", email, profile)
			}
			return &ports.SignInResult{
				User:  &domain.User{Email: email, Name: profile.Name, Role: domain.RoleNone},
				Token: "token123",
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/user/alice@example.com", strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("alice@example.com")

	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["result"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected result payload: %+v", resp["result"])
	}
}

func TestUserHandler_SignIn_InvalidPayload(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		signInFn: func(ctx context.Context, email string, profile ports.UserProfile) (*ports.SignInResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/user/x", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("x")

	_ = handler.SignIn(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_IsAdmin_True(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		isAdminFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/admin/root@example.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("root@example.com")

	if err := handler.IsAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp["admin"] {
		t.Fatalf("expected admin=true, got %+v", resp)
	}
}

func TestUserHandler_IsAdmin_UnknownEmail(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		isAdminFn: func(ctx context.Context, email string) (bool, error) {
			return false, domain.ErrUnknownIdentity
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/admin/ghost@example.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("ghost@example.com")

	if err := handler.IsAdmin(c); err != nil {
		t.Fatalf("unknown email must not fault: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["admin"] {
		t.Fatalf("unknown email must report admin=false")
	}
}

func TestUserHandler_Promote(t *testing.T) {
	e := echo.New()
	promoted := ""
	stub := &stubUserService{
		promoteFn: func(ctx context.Context, email string) error {
			promoted = email
			return nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/user/admin/bob@example.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("bob@example.com")

	if err := handler.Promote(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if promoted != "bob@example.com" {
		t.Fatalf("expected promotion of bob@example.com, got %q", promoted)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
