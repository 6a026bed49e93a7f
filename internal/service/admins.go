package service

import (
	"context"

	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/store"
)

// AdminService manages admin profiles, the rooms they control and their
// reservation holdings.
type AdminService struct{ *base }

// Admins returns every admin.
func (s *AdminService) Admins(ctx context.Context) ([]model.Admin, error) {
	return s.store.ListAdmins(ctx)
}

// AdminsByUsername returns every admin ordered by username.
func (s *AdminService) AdminsByUsername(ctx context.Context, desc bool) ([]model.Admin, error) {
	return s.store.ListAdminsByUsername(ctx, desc)
}

// Admin returns the admin with the given id with its rooms and reservations.
func (s *AdminService) Admin(ctx context.Context, id int64) (*model.Admin, error) {
	return adminByID(ctx, s.store, id)
}

// CreateAdmin registers an admin.
func (s *AdminService) CreateAdmin(ctx context.Context, in ProfileInput) (*model.Admin, error) {
	if !in.complete() {
		return nil, apperr.BadRequest("Admin info must be fully completed.")
	}

	var a *model.Admin
	err := s.tx(ctx, func(tx store.Store) error {
		err := ensureUnique(ctx,
			uniqueCheck{
				lookup:  func(ctx context.Context) (bool, error) { return taken(tx.FindAdminByEmail(ctx, in.Email)) },
				message: "Email %s is already taken.",
				value:   in.Email,
			},
			uniqueCheck{
				lookup:  func(ctx context.Context) (bool, error) { return taken(tx.FindAdminByUsername(ctx, in.Username)) },
				message: "Username %s is already taken.",
				value:   in.Username,
			},
		)
		if err != nil {
			return err
		}

		hashed, err := s.hash(in.Password)
		if err != nil {
			return err
		}
		a = &model.Admin{Profile: model.Profile{
			Username: in.Username,
			Email:    in.Email,
			Password: hashed,
			Role:     model.RoleAdmin,
		}}
		return tx.CreateAdmin(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	logMutation("admin", a.ID, "created")
	return a, nil
}

// UpdateAdmin changes the admin's email, which must be new.
func (s *AdminService) UpdateAdmin(ctx context.Context, id int64, email string) (*model.Admin, error) {
	var a *model.Admin
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		if a, err = adminByID(ctx, tx, id); err != nil {
			return err
		}
		if email == "" {
			return apperr.BadRequest("Admin email must be filled.")
		}
		if email == a.Email {
			return apperr.BadRequest("Email must differ from the current one.")
		}
		exists, err := taken(tx.FindAdminByEmail(ctx, email))
		if err != nil {
			return err
		}
		if exists {
			return apperr.BadRequest("Email %s is already taken.", email)
		}
		a.Email = email
		return tx.SaveAdmin(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	logMutation("admin", id, "updated")
	return a, nil
}

// DeleteAdmin deletes the admin and releases the rooms it controls.
func (s *AdminService) DeleteAdmin(ctx context.Context, id int64) error {
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := adminByID(ctx, tx, id); err != nil {
			return err
		}
		return tx.DeleteAdmin(ctx, id)
	})
	if err != nil {
		return err
	}
	logMutation("admin", id, "deleted")
	return nil
}

// AdminControlRoom adds the room to the admin's controlled rooms.
func (s *AdminService) AdminControlRoom(ctx context.Context, adminID, roomID int64) error {
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := adminByID(ctx, tx, adminID); err != nil {
			return err
		}
		if _, err := roomByID(ctx, tx, roomID); err != nil {
			return err
		}
		return tx.AddAdminRoom(ctx, adminID, roomID)
	})
	if err != nil {
		return err
	}
	logMutation("admin", adminID, "took control of a room")
	return nil
}

// AddAdminReservation gives the admin a place in the reservation's room.
func (s *AdminService) AddAdminReservation(ctx context.Context, adminID, reservationID int64) (*model.Reservation, error) {
	var r *model.Reservation
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := adminByID(ctx, tx, adminID); err != nil {
			return err
		}
		var err error
		r, err = s.attach(ctx, tx, adminHolder, adminID, reservationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	logMutation("admin", adminID, "added a reservation")
	s.notify(attachedEvent(adminHolder, adminID, r))
	return r, nil
}

// DeleteAdminReservation releases the admin's place in the reservation's
// room and clears all of the admin's reservations.
func (s *AdminService) DeleteAdminReservation(ctx context.Context, adminID, reservationID int64) error {
	var r *model.Reservation
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := adminByID(ctx, tx, adminID); err != nil {
			return err
		}
		var err error
		r, err = s.detach(ctx, tx, adminHolder, adminID, reservationID)
		return err
	})
	if err != nil {
		return err
	}
	logMutation("admin", adminID, "removed a reservation")
	s.notify(detachedEvent(adminHolder, adminID, r))
	return nil
}
