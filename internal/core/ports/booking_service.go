package ports

import (
	"context"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
)

// CreateBookingInput carries the data needed to create a booking. Requester
// always comes from the verified bearer identity, never the request body.
type CreateBookingInput struct {
	Requester   string
	ServiceID   string
	ServiceName string
	Date        string
	TotalPrice  float64
}

// BookingService owns the booking lifecycle state machine.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (string, error)
	// Approve transitions created → approved. Idempotent: re-approving is a
	// no-op, and so is approving an id that a concurrent delete already
	// removed (there is no cross-request serialization). The returned flag
	// reports whether a document actually changed.
	Approve(ctx context.Context, id string) (bool, error)
	// RequestPaymentIntent asks the payment provider for a client secret
	// covering the booking's total price in integer minor units. It does not
	// mutate the booking; the state change happens on confirmation.
	RequestPaymentIntent(ctx context.Context, id string) (string, error)
	// ConfirmPayment records the provider transaction id, marks the booking
	// paid, and moves it to the paid status.
	ConfirmPayment(ctx context.Context, id, transactionID string) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Booking, error)
	ListByRequester(ctx context.Context, email string) ([]*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
}
