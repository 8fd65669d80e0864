package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cleanhub/marketplace-api/internal/api/metrics"
	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for the booking lifecycle and the
// payment-intent handshake.
type BookingHandler struct {
	bookings ports.BookingService
	roles    ports.RoleChecker
}

func NewBookingHandler(bookings ports.BookingService, roles ports.RoleChecker) *BookingHandler {
	return &BookingHandler{bookings: bookings, roles: roles}
}

type createBookingRequest struct {
	ServiceID   string  `json:"service_id" validate:"required"`
	ServiceName string  `json:"service_name" validate:"required"`
	Date        string  `json:"date"`
	TotalPrice  float64 `json:"total_price" validate:"required,gt=0"`
}

type createBookingResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type confirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

type paymentIntentRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// Create handles POST /bookings. The requester is always the verified
// bearer identity; a requester field in the body is ignored.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  createBookingResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	requester, err := subject(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	id, err := h.bookings.Create(c.Request().Context(), ports.CreateBookingInput{
		Requester:   requester,
		ServiceID:   req.ServiceID,
		ServiceName: req.ServiceName,
		Date:        req.Date,
		TotalPrice:  req.TotalPrice,
	})
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createBookingResponse{ID: id, Status: string(domain.BookingCreated)})
}

// Approve handles PATCH /bookings/:id (admin only). The transition metric
// only counts approvals that changed a document; idempotent re-approvals
// and approvals that lost a race with a delete are not transitions.
func (h *BookingHandler) Approve(c echo.Context) error {
	changed, err := h.bookings.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if changed {
		metrics.BookingTransitionsTotal.WithLabelValues(string(domain.BookingApproved)).Inc()
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(domain.BookingApproved)})
}

// ConfirmPayment handles PATCH /order/:id (admin only). Records the
// provider transaction id and moves the booking to paid.
func (h *BookingHandler) ConfirmPayment(c echo.Context) error {
	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.bookings.ConfirmPayment(c.Request().Context(), c.Param("id"), req.TransactionID); err != nil {
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(domain.BookingPaid)).Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": string(domain.BookingPaid)})
}

// CreatePaymentIntent handles POST /create-payment-intent.
//
// @Summary      Request a payment intent for a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentIntentRequest  true  "Booking reference"
// @Success      200   {object}  paymentIntentResponse
// @Failure      404   {object}  map[string]string
// @Router       /create-payment-intent [post]
func (h *BookingHandler) CreatePaymentIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	secret, err := h.bookings.RequestPaymentIntent(c.Request().Context(), req.BookingID)
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PaymentIntentsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}

// ListByEmail handles GET /booking/:email. Non-admins only see their own
// bookings.
func (h *BookingHandler) ListByEmail(c echo.Context) error {
	requester, err := subject(c)
	if err != nil {
		return err
	}

	email := c.Param("email")
	if requester != email {
		isAdmin, err := h.roles.IsAdmin(c.Request().Context(), requester)
		if err != nil {
			return err
		}
		if !isAdmin {
			return domain.ErrInsufficientRole
		}
	}

	bookings, err := h.bookings.ListByRequester(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// List handles GET /bookings (admin only).
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.bookings.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Delete handles DELETE /bookings/:id. The owning requester or an admin
// may delete; anyone else is rejected before the record is touched.
func (h *BookingHandler) Delete(c echo.Context) error {
	requester, err := subject(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	booking, err := h.bookings.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if booking.Requester != requester {
		isAdmin, err := h.roles.IsAdmin(c.Request().Context(), requester)
		if err != nil {
			return err
		}
		if !isAdmin {
			return domain.ErrInsufficientRole
		}
	}

	if err := h.bookings.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
