package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/store"
)

// Bootstrap prepares the data a fresh deployment needs.
type Bootstrap struct{ *base }

// EnsureAdmin creates a user with role ADMIN unless the username or email is
// already registered. It reports whether an account was created.
func (b *Bootstrap) EnsureAdmin(ctx context.Context, in ProfileInput) (bool, error) {
	created := false
	err := b.tx(ctx, func(tx store.Store) error {
		for _, lookup := range []func() (bool, error){
			func() (bool, error) { return taken(tx.FindUserByUsername(ctx, in.Username)) },
			func() (bool, error) { return taken(tx.FindUserByEmail(ctx, in.Email)) },
		} {
			exists, err := lookup()
			if err != nil || exists {
				return err
			}
		}

		hashed, err := b.hash(in.Password)
		if err != nil {
			return err
		}
		u := &model.User{Profile: model.Profile{
			Username: in.Username,
			Email:    in.Email,
			Password: hashed,
			Role:     model.RoleAdmin,
		}}
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		log.Info().Str("username", in.Username).Msg("seeded administrator account")
	}
	return created, nil
}
