package domain

import (
	"errors"
	"time"
)

// Role is the closed set of privilege tiers. There is exactly one elevated
// role; everything else is an ordinary account.
type Role string

const (
	RoleNone  Role = "none"
	RoleAdmin Role = "admin"
)

// ParseRole resolves a stored role string to its canonical value. Only the
// exact lowercase value grants the elevated role; every other string,
// including case variants like "Admin" left by older writers, resolves to
// the ordinary role. The write path always stores the canonical form, so
// anything else is untrusted data and must not elevate.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleNone
}

// IsAdmin reports whether the role grants elevated access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientRole   = errors.New("insufficient role")
	ErrUnknownIdentity    = errors.New("unknown identity")
	ErrUserNotFound       = errors.New("user not found")
)

// User models an account in the marketplace. Email is the natural key and
// is used for every lookup; the document id only matters for deletion.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	ImageURL  string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
