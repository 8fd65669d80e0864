package ports

import (
	"context"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
)

// UserProfile carries the opaque profile fields a sign-in or self-update may
// set. Role is deliberately absent: it is only ever written through SetRole.
type UserProfile struct {
	Name     string
	Phone    string
	Address  string
	ImageURL string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail retrieves a user by email, the natural key.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Upsert creates or updates the profile for email. New documents start
	// with the ordinary role; existing roles are never touched.
	Upsert(ctx context.Context, email string, profile UserProfile) (*domain.User, error)
	// SetRole overwrites the role for email.
	SetRole(ctx context.Context, email string, role domain.Role) error
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
