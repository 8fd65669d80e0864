package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingCreated        BookingStatus = "created"
	BookingApproved       BookingStatus = "approved"
	BookingPaymentPending BookingStatus = "payment_pending"
	BookingPaid           BookingStatus = "paid"
)

// validTransitions defines the allowed state machine transitions. Deletion
// is physical removal of the document, not a status, so it does not appear
// here. A payment intent may be confirmed straight from approved; the
// payment_pending hop is implicit and never persisted on its own.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingCreated:        {BookingApproved},
	BookingApproved:       {BookingPaymentPending, BookingPaid},
	BookingPaymentPending: {BookingPaid},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrBookingNotFound = errors.New("booking not found")
var ErrUpstreamFailure = errors.New("upstream dependency failed")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a requested instance of a cleaning service. Status and the
// payment fields are only ever mutated through the booking service; every
// mutation is a single document-level update, so the datastore's atomicity
// is the only concurrency control (last write wins).
type Booking struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	Requester     string        `json:"email" bson:"email"`
	ServiceID     string        `json:"service_id" bson:"service_id"`
	ServiceName   string        `json:"service_name" bson:"service_name"`
	Date          string        `json:"date,omitempty" bson:"date,omitempty"`
	TotalPrice    float64       `json:"total_price" bson:"total_price"`
	Status        BookingStatus `json:"status" bson:"status"`
	Paid          bool          `json:"paid" bson:"paid"`
	TransactionID string        `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
}
