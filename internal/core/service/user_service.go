package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cleanhub/marketplace-api/internal/core/domain"
	"github.com/cleanhub/marketplace-api/internal/core/ports"
)

// RoleCache abstracts the short-lived role lookup cache (Redis). A cache
// failure never fails the request; the store lookup proceeds regardless.
type RoleCache interface {
	Get(ctx context.Context, email string) (domain.Role, bool, error)
	Set(ctx context.Context, email string, role domain.Role) error
	Invalidate(ctx context.Context, email string) error
}

// UserService implements account use cases and the role check consumed by
// the admin authorization gate.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenCodec
	roles  RoleCache
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens ports.TokenCodec, roles RoleCache, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, roles: roles, log: log}
}

// SignIn upserts the account profile keyed by email and issues a fresh
// bearer token for it. First sign-in creates the account with the ordinary
// role; the role of an existing account is never touched here.
func (s *UserService) SignIn(ctx context.Context, email string, profile ports.UserProfile) (*ports.SignInResult, error) {
	user, err := s.repo.Upsert(ctx, email, profile)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, err
	}

	s.invalidateRole(ctx, email)
	s.log.Info().Str("email", email).Msg("user signed in")

	return &ports.SignInResult{User: user, Token: token}, nil
}

// UpdateProfile upserts the profile without issuing a token.
func (s *UserService) UpdateProfile(ctx context.Context, email string, profile ports.UserProfile) (*domain.User, error) {
	user, err := s.repo.Upsert(ctx, email, profile)
	if err != nil {
		return nil, err
	}
	s.invalidateRole(ctx, email)
	return user, nil
}

// IsAdmin reports whether the identity holds the elevated role. A missing
// account is an explicit failure (domain.ErrUnknownIdentity), not a crash.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	if role, ok, err := s.roles.Get(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("role cache read failed, falling back to store")
	} else if ok {
		return role.IsAdmin(), nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, domain.ErrUnknownIdentity
		}
		return false, err
	}

	if err := s.roles.Set(ctx, email, user.Role); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("role cache write failed")
	}

	return user.Role.IsAdmin(), nil
}

// Promote grants the elevated role to email.
func (s *UserService) Promote(ctx context.Context, email string) error {
	if err := s.repo.SetRole(ctx, email, domain.RoleAdmin); err != nil {
		return err
	}
	s.invalidateRole(ctx, email)
	s.log.Info().Str("email", email).Msg("user promoted to admin")
	return nil
}

func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) invalidateRole(ctx context.Context, email string) {
	if err := s.roles.Invalidate(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("role cache invalidation failed")
	}
}
