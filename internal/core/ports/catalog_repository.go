package ports

import (
	"context"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
)

// ServiceRepository defines persistence for the service catalog. The
// catalog endpoints are pass-through proxies, so handlers consume this port
// directly; there is no service layer in between.
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines persistence for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context) ([]*domain.Review, error)
	FindByEmail(ctx context.Context, email string) ([]*domain.Review, error)
	// SetStatus overwrites the published flag. The toggle endpoint reads the
	// current value first; that read-modify-write is not atomic and loses
	// updates under concurrent toggles of the same review.
	SetStatus(ctx context.Context, id string, status bool) error
	Delete(ctx context.Context, id string) error
}
