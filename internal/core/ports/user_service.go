package ports

import (
	"context"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
)

// RoleChecker is the narrow dependency of the admin authorization gate.
type RoleChecker interface {
	// IsAdmin reports whether the identity holds the elevated role.
	// Fails with domain.ErrUnknownIdentity when no account exists.
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// SignInResult is returned by SignIn: the upserted account plus a fresh
// bearer token for it.
type SignInResult struct {
	User  *domain.User
	Token string
}

// UserService defines account use cases.
type UserService interface {
	RoleChecker

	// SignIn upserts the profile for email and issues a bearer token.
	SignIn(ctx context.Context, email string, profile UserProfile) (*SignInResult, error)
	// UpdateProfile upserts the profile without issuing a token.
	UpdateProfile(ctx context.Context, email string, profile UserProfile) (*domain.User, error)
	// Promote grants the elevated role to email.
	Promote(ctx context.Context, email string) error
	Get(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
