package service

import (
	"context"
	"errors"

	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/store"
)

// ErrInvalidCredentials is returned by Login when no account matches.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Principal identifies an authenticated account.
type Principal struct {
	Kind model.AccountKind
	ID   int64
	Role model.Role
}

// AuthService verifies account credentials.
type AuthService struct{ *base }

// Login checks the credentials against users first, then admins.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Principal, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.store.FindUserByUsername(ctx, username)
	switch {
	case err == nil && s.passwordMatches(u.Password, password):
		return &Principal{Kind: model.AccountUser, ID: u.ID, Role: u.Role}, nil
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	a, err := s.store.FindAdminByUsername(ctx, username)
	switch {
	case err == nil && s.passwordMatches(a.Password, password):
		return &Principal{Kind: model.AccountAdmin, ID: a.ID, Role: model.RoleAdmin}, nil
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	return nil, ErrInvalidCredentials
}
