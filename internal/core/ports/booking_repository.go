package ports

import (
	"context"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings. Every
// mutation maps to a single document-level update so the store's atomicity
// is the only mutual exclusion (see the booking service for the lifecycle
// rules built on top).
type BookingRepository interface {
	// Create inserts a new booking document and returns its generated id.
	Create(ctx context.Context, b *domain.Booking) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	FindByRequester(ctx context.Context, email string) ([]*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	// UpdateStatus sets status=to on the document, but only when its current
	// status is from. It reports whether a document was modified; matching
	// nothing is not an error.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error)
	// RecordPayment atomically sets paid=true, the transaction id, and the
	// paid status. Fails with domain.ErrBookingNotFound when id is absent.
	RecordPayment(ctx context.Context, id, transactionID string) error
	// Delete removes the document. Fails with domain.ErrBookingNotFound when
	// id is absent.
	Delete(ctx context.Context, id string) error
}
