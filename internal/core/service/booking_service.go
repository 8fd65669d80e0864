package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

// BookingService owns the booking lifecycle state machine. There is no
// in-process serialization of operations on the same booking: every
// mutation is a single document-level update and last write wins.
type BookingService struct {
	repo     ports.BookingRepository
	payments ports.PaymentProvider
	currency string
	log      zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, payments ports.PaymentProvider, currency string, log zerolog.Logger) *BookingService {
	if currency == "" {
		currency = "usd"
	}
	return &BookingService{repo: repo, payments: payments, currency: currency, log: log}
}

// Create inserts a new booking in the created state. Field validation
// beyond structural presence is the transport layer's job.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (string, error) {
	booking := &domain.Booking{
		Requester:   input.Requester,
		ServiceID:   input.ServiceID,
		ServiceName: input.ServiceName,
		Date:        input.Date,
		TotalPrice:  input.TotalPrice,
		Status:      domain.BookingCreated,
		Paid:        false,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, booking)
	if err != nil {
		s.log.Error().Err(err).Str("requester", input.Requester).Msg("failed to create booking")
		return "", err
	}

	s.log.Info().Str("booking_id", id).Str("requester", input.Requester).Msg("booking created")
	return id, nil
}

// Approve transitions created → approved with a single conditional update.
// Matching nothing is deliberately not an error: a second approval of the
// same booking is a no-op, and an approval racing a delete silently loses.
// The flag reports whether a document changed so callers do not count
// no-ops as transitions.
func (s *BookingService) Approve(ctx context.Context, id string) (bool, error) {
	changed, err := s.repo.UpdateStatus(ctx, id, domain.BookingCreated, domain.BookingApproved)
	if err != nil {
		return false, fmt.Errorf("approve booking: %w", err)
	}
	if changed {
		s.log.Info().Str("booking_id", id).Msg("booking approved")
	}
	return changed, nil
}

// RequestPaymentIntent asks the payment provider for a client secret
// covering the booking's total price. The amount is converted to integer
// minor units before it crosses the boundary; the float price never does.
// The booking itself is not mutated — the state change happens when the
// payment is confirmed.
func (s *BookingService) RequestPaymentIntent(ctx context.Context, id string) (string, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	amountMinor := toMinorUnits(booking.TotalPrice)
	secret, err := s.payments.CreateIntent(ctx, amountMinor, s.currency)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", id).Int64("amount_minor", amountMinor).Msg("payment intent creation failed")
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	s.log.Info().Str("booking_id", id).Int64("amount_minor", amountMinor).Str("currency", s.currency).Msg("payment intent created")
	return secret, nil
}

// ConfirmPayment records the provider transaction id, marks the booking
// paid, and moves it to the paid status in one atomic update. Concurrent
// confirmations with different transaction ids leave the record consistent:
// the last update wins whole.
func (s *BookingService) ConfirmPayment(ctx context.Context, id, transactionID string) error {
	if err := s.repo.RecordPayment(ctx, id, transactionID); err != nil {
		return err
	}
	s.log.Info().Str("booking_id", id).Str("transaction_id", transactionID).Msg("payment confirmed")
	return nil
}

// Delete removes the booking. Irreversible.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("booking_id", id).Msg("booking deleted")
	return nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookingService) ListByRequester(ctx context.Context, email string) ([]*domain.Booking, error) {
	return s.repo.FindByRequester(ctx, email)
}

func (s *BookingService) List(ctx context.Context) ([]*domain.Booking, error) {
	return s.repo.List(ctx)
}

// toMinorUnits converts a major-unit price to integer minor units. Rounding
// happens exactly once so 50.00 becomes 5000, never 4999.
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
