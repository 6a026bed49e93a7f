package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"room-meeting-backend/internal/apperr"
)

var errNoHasher = errors.New("service: password hasher is not configured")

// ProfileInput carries account credentials.
type ProfileInput struct {
	Username string
	Email    string
	Password string
}

func (in ProfileInput) complete() bool {
	return in.Username != "" && in.Email != "" && in.Password != ""
}

func (b *base) hash(plain string) (string, error) {
	if b.hasher == nil {
		return "", errNoHasher
	}
	hashed, err := b.hasher.Hash(plain)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.BadRequest("Password must not be longer than 72 bytes.")
	}
	return hashed, err
}

func (b *base) passwordMatches(hash, plain string) bool {
	return b.hasher != nil && b.hasher.Matches(hash, plain)
}

type uniqueCheck struct {
	lookup  func(ctx context.Context) (bool, error)
	message string
	value   string
}

// ensureUnique runs the checks in order and fails on the first taken value.
func ensureUnique(ctx context.Context, checks ...uniqueCheck) error {
	for _, c := range checks {
		exists, err := c.lookup(ctx)
		if err != nil {
			return err
		}
		if exists {
			return apperr.BadRequest(c.message, c.value)
		}
	}
	return nil
}
