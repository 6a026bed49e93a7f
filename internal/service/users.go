package service

import (
	"context"

	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/store"
)

// UserService manages user profiles, their payments and reservation holdings.
type UserService struct{ *base }

// Users returns every user.
func (s *UserService) Users(ctx context.Context) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}

// UsersByUsername returns every user ordered by username.
func (s *UserService) UsersByUsername(ctx context.Context, desc bool) ([]model.User, error) {
	return s.store.ListUsersByUsername(ctx, desc)
}

// User returns the user with the given id together with its reservations.
func (s *UserService) User(ctx context.Context, id int64) (*model.User, error) {
	return userByID(ctx, s.store, id)
}

// UserByUsername returns the user with the given username.
func (s *UserService) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := s.store.FindUserByUsername(ctx, username)
	return found(u, err, "User with username %s not found.", username)
}

// UserByEmail returns the user with the given email.
func (s *UserService) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.store.FindUserByEmail(ctx, email)
	return found(u, err, "User with email %s not found.", email)
}

// CreateUser registers a user with role USER.
func (s *UserService) CreateUser(ctx context.Context, in ProfileInput) (*model.User, error) {
	return s.createUser(ctx, in, model.RoleUser)
}

func (s *UserService) createUser(ctx context.Context, in ProfileInput, role model.Role) (*model.User, error) {
	if !in.complete() {
		return nil, apperr.BadRequest("User info must be fully completed.")
	}

	var u *model.User
	err := s.tx(ctx, func(tx store.Store) error {
		err := ensureUnique(ctx,
			uniqueCheck{
				lookup:  func(ctx context.Context) (bool, error) { return taken(tx.FindUserByUsername(ctx, in.Username)) },
				message: "Username %s is already taken.",
				value:   in.Username,
			},
			uniqueCheck{
				lookup:  func(ctx context.Context) (bool, error) { return taken(tx.FindUserByEmail(ctx, in.Email)) },
				message: "Email %s is already taken.",
				value:   in.Email,
			},
		)
		if err != nil {
			return err
		}

		hashed, err := s.hash(in.Password)
		if err != nil {
			return err
		}
		u = &model.User{Profile: model.Profile{
			Username: in.Username,
			Email:    in.Email,
			Password: hashed,
			Role:     role,
		}}
		return tx.CreateUser(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	logMutation("user", u.ID, "created")
	return u, nil
}

// UpdateUser replaces username, email and password. All three are required
// and each must differ from its current value.
func (s *UserService) UpdateUser(ctx context.Context, id int64, in ProfileInput) (*model.User, error) {
	var u *model.User
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		if u, err = userByID(ctx, tx, id); err != nil {
			return err
		}
		if !in.complete() {
			return apperr.BadRequest("User info must be fully completed.")
		}
		if in.Username == u.Username {
			return apperr.BadRequest("Username must differ from the current one.")
		}
		if in.Email == u.Email {
			return apperr.BadRequest("Email must differ from the current one.")
		}
		if s.passwordMatches(u.Password, in.Password) {
			return apperr.BadRequest("Password must differ from the current one.")
		}
		err = ensureUnique(ctx,
			uniqueCheck{
				lookup:  func(ctx context.Context) (bool, error) { return taken(tx.FindUserByUsername(ctx, in.Username)) },
				message: "Username %s is already taken.",
				value:   in.Username,
			},
			uniqueCheck{
				lookup:  func(ctx context.Context) (bool, error) { return taken(tx.FindUserByEmail(ctx, in.Email)) },
				message: "Email %s is already taken.",
				value:   in.Email,
			},
		)
		if err != nil {
			return err
		}

		hashed, err := s.hash(in.Password)
		if err != nil {
			return err
		}
		u.Username = in.Username
		u.Email = in.Email
		u.Password = hashed
		return tx.SaveUser(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	logMutation("user", id, "updated")
	return u, nil
}

// DeleteUser deletes the user together with its payments.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := userByID(ctx, tx, id); err != nil {
			return err
		}
		return tx.DeleteUser(ctx, id)
	})
	if err != nil {
		return err
	}
	logMutation("user", id, "deleted")
	return nil
}

// AddUserPayment makes the user the owner of the payment.
func (s *UserService) AddUserPayment(ctx context.Context, userID, paymentID int64) (*model.Payment, error) {
	var p *model.Payment
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := userByID(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		if p, err = paymentByID(ctx, tx, paymentID); err != nil {
			return err
		}
		p.UserID = &userID
		return tx.SavePayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	logMutation("user", userID, "added a payment")
	return p, nil
}

// AddUserReservation gives the user a place in the reservation's room.
func (s *UserService) AddUserReservation(ctx context.Context, userID, reservationID int64) (*model.Reservation, error) {
	var r *model.Reservation
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := userByID(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		r, err = s.attach(ctx, tx, userHolder, userID, reservationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	logMutation("user", userID, "added a reservation")
	s.notify(attachedEvent(userHolder, userID, r))
	return r, nil
}

// DeleteReservationFromUser releases the user's place in the reservation's
// room and clears all of the user's reservations.
func (s *UserService) DeleteReservationFromUser(ctx context.Context, userID, reservationID int64) error {
	var r *model.Reservation
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := userByID(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		r, err = s.detach(ctx, tx, userHolder, userID, reservationID)
		return err
	})
	if err != nil {
		return err
	}
	logMutation("user", userID, "removed a reservation")
	s.notify(detachedEvent(userHolder, userID, r))
	return nil
}
