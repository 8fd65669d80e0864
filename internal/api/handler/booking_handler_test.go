package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cleanhub/marketplace-api/internal/api/metrics"
	"github.com/cleanhub/marketplace-api/internal/api/middleware"
	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

type stubBookingService struct {
	createFn       func(ctx context.Context, input ports.CreateBookingInput) (string, error)
	intentFn       func(ctx context.Context, id string) (string, error)
	getFn          func(ctx context.Context, id string) (*domain.Booking, error)
	deleteFn       func(ctx context.Context, id string) error
	listByFn       func(ctx context.Context, email string) ([]*domain.Booking, error)
	approveChanged bool
	approved       []string
	confirmed      []string
}

func (s *stubBookingService) Create(ctx context.Context, input ports.CreateBookingInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookingService) Approve(_ context.Context, id string) (bool, error) {
	s.approved = append(s.approved, id)
	return s.approveChanged, nil
}

func (s *stubBookingService) RequestPaymentIntent(ctx context.Context, id string) (string, error) {
	return s.intentFn(ctx, id)
}

func (s *stubBookingService) ConfirmPayment(_ context.Context, id, transactionID string) error {
	s.confirmed = append(s.confirmed, id+":"+transactionID)
	return nil
}

func (s *stubBookingService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubBookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookingService) ListByRequester(ctx context.Context, email string) ([]*domain.Booking, error) {
	return s.listByFn(ctx, email)
}

func (s *stubBookingService) List(_ context.Context) ([]*domain.Booking, error) { return nil, nil }

type stubRoles struct {
	admins map[string]bool
}

func (s *stubRoles) IsAdmin(_ context.Context, email string) (bool, error) {
	return s.admins[email], nil
}

func bookingContext(e *echo.Echo, method, target, body, subject string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if subject != "" {
		c.Set(middleware.SubjectKey, subject)
	}
	return c, rec
}

func TestBookingHandler_Create_RequesterFromToken(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	var got ports.CreateBookingInput
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (string, error) {
			got = input
			return "bk-1", nil
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{})

	body := `{"service_id":"svc-1","service_name":"Deep Clean","date":"2024-05-01","total_price":50,"requester":"mallory@example.com"}`
	c, rec := bookingContext(e, http.MethodPost, "/bookings", body, "alice@example.com")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Requester != "alice@example.com" {
		t.Fatalf("requester must come from the token, got %q", got.Requester)
	}
	if got.ServiceID != "svc-1" || got.TotalPrice != 50 {
		t.Fatalf("unexpected input: %+v", got)
	}

	var resp createBookingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "bk-1" || resp.Status != string(domain.BookingCreated) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBookingHandler_Create_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (string, error) {
			t.Fatalf("invalid payload must not reach the service")
			return "", nil
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{})

	c, rec := bookingContext(e, http.MethodPost, "/bookings", `{"service_id":"svc-1"}`, "alice@example.com")

	_ = handler.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBookingHandler_Create_NoSubject(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	handler := NewBookingHandler(&stubBookingService{}, &stubRoles{})
	c, _ := bookingContext(e, http.MethodPost, "/bookings", `{"service_id":"s","service_name":"n","total_price":1}`, "")

	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing claims, got %v", err)
	}
}

func TestBookingHandler_CreatePaymentIntent(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubBookingService{
		intentFn: func(ctx context.Context, id string) (string, error) {
			if id != "bk-7" {
				t.Fatalf("unexpected booking id %q", id)
			}
			return "pi_secret_123", nil
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{})

	c, rec := bookingContext(e, http.MethodPost, "/create-payment-intent", `{"booking_id":"bk-7"}`, "alice@example.com")

	if err := handler.CreatePaymentIntent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp paymentIntentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ClientSecret != "pi_secret_123" {
		t.Fatalf("unexpected client secret %q", resp.ClientSecret)
	}
}

func TestBookingHandler_CreatePaymentIntent_NotFound(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubBookingService{
		intentFn: func(ctx context.Context, id string) (string, error) {
			return "", domain.ErrBookingNotFound
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{})

	c, _ := bookingContext(e, http.MethodPost, "/create-payment-intent", `{"booking_id":"ghost"}`, "alice@example.com")

	if err := handler.CreatePaymentIntent(c); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingHandler_ConfirmPayment(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubBookingService{}
	handler := NewBookingHandler(stub, &stubRoles{})

	c, rec := bookingContext(e, http.MethodPatch, "/order/bk-3", `{"transaction_id":"txn_9"}`, "admin@example.com")
	c.SetParamNames("id")
	c.SetParamValues("bk-3")

	if err := handler.ConfirmPayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.confirmed) != 1 || stub.confirmed[0] != "bk-3:txn_9" {
		t.Fatalf("unexpected confirmations: %v", stub.confirmed)
	}
}

func TestBookingHandler_ListByEmail_SelfAllowed(t *testing.T) {
	e := echo.New()

	stub := &stubBookingService{
		listByFn: func(ctx context.Context, email string) ([]*domain.Booking, error) {
			return []*domain.Booking{{ID: "bk-1", Requester: email}}, nil
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{})

	c, rec := bookingContext(e, http.MethodGet, "/booking/alice@example.com", "", "alice@example.com")
	c.SetParamNames("email")
	c.SetParamValues("alice@example.com")

	if err := handler.ListByEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBookingHandler_ListByEmail_OtherUserRejected(t *testing.T) {
	e := echo.New()

	stub := &stubBookingService{
		listByFn: func(ctx context.Context, email string) ([]*domain.Booking, error) {
			t.Fatalf("rejected requester must not reach the store")
			return nil, nil
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{admins: map[string]bool{}})

	c, _ := bookingContext(e, http.MethodGet, "/booking/bob@example.com", "", "alice@example.com")
	c.SetParamNames("email")
	c.SetParamValues("bob@example.com")

	if err := handler.ListByEmail(c); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestBookingHandler_ListByEmail_AdminSeesOthers(t *testing.T) {
	e := echo.New()

	stub := &stubBookingService{
		listByFn: func(ctx context.Context, email string) ([]*domain.Booking, error) {
			return nil, nil
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{admins: map[string]bool{"root@example.com": true}})

	c, rec := bookingContext(e, http.MethodGet, "/booking/bob@example.com", "", "root@example.com")
	c.SetParamNames("email")
	c.SetParamValues("bob@example.com")

	if err := handler.ListByEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBookingHandler_Delete_OwnerAllowed(t *testing.T) {
	e := echo.New()

	deleted := ""
	stub := &stubBookingService{
		getFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return &domain.Booking{ID: id, Requester: "alice@example.com"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{})

	c, rec := bookingContext(e, http.MethodDelete, "/bookings/bk-5", "", "alice@example.com")
	c.SetParamNames("id")
	c.SetParamValues("bk-5")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "bk-5" {
		t.Fatalf("expected deletion of bk-5, got %q", deleted)
	}
}

func TestBookingHandler_Delete_StrangerRejected(t *testing.T) {
	e := echo.New()

	stub := &stubBookingService{
		getFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return &domain.Booking{ID: id, Requester: "alice@example.com"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			t.Fatalf("rejected requester must not delete")
			return nil
		},
	}
	handler := NewBookingHandler(stub, &stubRoles{admins: map[string]bool{}})

	c, _ := bookingContext(e, http.MethodDelete, "/bookings/bk-5", "", "mallory@example.com")
	c.SetParamNames("id")
	c.SetParamValues("bk-5")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestBookingHandler_Delete_AdminAllowed(t *testing.T) {
	e := echo.New()

	stub := &stubBookingService{
		getFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return &domain.Booking{ID: id, Requester: "alice@example.com"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	handler := NewBookingHandler(stub, &stubRoles{admins: map[string]bool{"root@example.com": true}})

	c, rec := bookingContext(e, http.MethodDelete, "/bookings/bk-5", "", "root@example.com")
	c.SetParamNames("id")
	c.SetParamValues("bk-5")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestBookingHandler_Approve(t *testing.T) {
	e := echo.New()

	stub := &stubBookingService{approveChanged: true}
	handler := NewBookingHandler(stub, &stubRoles{})

	c, rec := bookingContext(e, http.MethodPatch, "/bookings/bk-2", "", "admin@example.com")
	c.SetParamNames("id")
	c.SetParamValues("bk-2")

	if err := handler.Approve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.approved) != 1 || stub.approved[0] != "bk-2" {
		t.Fatalf("unexpected approvals: %v", stub.approved)
	}
}

func TestBookingHandler_Approve_NoOpDoesNotCountTransition(t *testing.T) {
	e := echo.New()

	counter := metrics.BookingTransitionsTotal.WithLabelValues(string(domain.BookingApproved))

	stub := &stubBookingService{approveChanged: false}
	handler := NewBookingHandler(stub, &stubRoles{})

	c, rec := bookingContext(e, http.MethodPatch, "/bookings/bk-2", "", "admin@example.com")
	c.SetParamNames("id")
	c.SetParamValues("bk-2")

	before := testutil.ToFloat64(counter)
	if err := handler.Approve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if after := testutil.ToFloat64(counter); after != before {
		t.Fatalf("no-op approval must not count as a transition: %v -> %v", before, after)
	}
}
