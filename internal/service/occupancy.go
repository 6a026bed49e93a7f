package service

import (
	"context"
	"fmt"

	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/booking"
	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/notification"
	"room-meeting-backend/internal/store"
)

// holder abstracts the reservation holdings of users and admins.
type holder struct {
	kind  model.AccountKind
	label string
	holds func(ctx context.Context, tx store.Store, ownerID, reservationID int64) (bool, error)
	add   func(ctx context.Context, tx store.Store, ownerID, reservationID int64) error
	clear func(ctx context.Context, tx store.Store, ownerID int64) error
}

var (
	userHolder = holder{
		kind:  model.AccountUser,
		label: "User",
		holds: func(ctx context.Context, tx store.Store, ownerID, reservationID int64) (bool, error) {
			return tx.UserHoldsReservation(ctx, ownerID, reservationID)
		},
		add: func(ctx context.Context, tx store.Store, ownerID, reservationID int64) error {
			return tx.AddUserReservation(ctx, ownerID, reservationID)
		},
		clear: func(ctx context.Context, tx store.Store, ownerID int64) error {
			return tx.ClearUserReservations(ctx, ownerID)
		},
	}
	adminHolder = holder{
		kind:  model.AccountAdmin,
		label: "Admin",
		holds: func(ctx context.Context, tx store.Store, ownerID, reservationID int64) (bool, error) {
			return tx.AdminHoldsReservation(ctx, ownerID, reservationID)
		},
		add: func(ctx context.Context, tx store.Store, ownerID, reservationID int64) error {
			return tx.AddAdminReservation(ctx, ownerID, reservationID)
		},
		clear: func(ctx context.Context, tx store.Store, ownerID int64) error {
			return tx.ClearAdminReservations(ctx, ownerID)
		},
	}
)

// attachableReservation loads a reservation an account is about to take,
// checking that it has a room with space left.
func (b *base) attachableReservation(ctx context.Context, tx store.Store, id int64) (*model.Reservation, error) {
	r, err := reservationByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := booking.CheckAttachable(r, b.maxCapacity); err != nil {
		return nil, err
	}
	return r, nil
}

// attach gives the owner the reservation and takes a place in its room.
// The owner must have been loaded by the caller.
func (b *base) attach(ctx context.Context, tx store.Store, h holder, ownerID, reservationID int64) (*model.Reservation, error) {
	r, err := b.attachableReservation(ctx, tx, reservationID)
	if err != nil {
		return nil, err
	}
	held, err := h.holds(ctx, tx, ownerID, reservationID)
	if err != nil {
		return nil, err
	}
	if held {
		return nil, apperr.BadRequest("%s already has a reservation in this room.", h.label)
	}

	booking.AddToRoom(r.Room)
	if err := tx.SaveRoom(ctx, r.Room); err != nil {
		return nil, err
	}
	if err := h.add(ctx, tx, ownerID, reservationID); err != nil {
		return nil, err
	}
	return r, nil
}

// detach frees the reservation's place in its room and clears every
// reservation the owner holds.
func (b *base) detach(ctx context.Context, tx store.Store, h holder, ownerID, reservationID int64) (*model.Reservation, error) {
	r, err := reservationByID(ctx, tx, reservationID)
	if err != nil {
		return nil, err
	}
	held, err := h.holds(ctx, tx, ownerID, reservationID)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, apperr.BadRequest("%s with id %d does not hold reservation with id %d.", h.label, ownerID, reservationID)
	}
	if r.Room == nil {
		return nil, apperr.BadRequest("Room reservation is null.")
	}

	if err := booking.RemoveFromRoom(r.Room); err != nil {
		return nil, err
	}
	if err := tx.SaveRoom(ctx, r.Room); err != nil {
		return nil, err
	}
	if err := h.clear(ctx, tx, ownerID); err != nil {
		return nil, err
	}
	return r, nil
}

func attachedEvent(h holder, ownerID int64, r *model.Reservation) notification.Event {
	return notification.Event{
		AccountKind: h.kind,
		AccountID:   ownerID,
		Message:     fmt.Sprintf("Reservation %d in room %s is now yours.", r.ID, r.Room.Name),
	}
}

func detachedEvent(h holder, ownerID int64, r *model.Reservation) notification.Event {
	return notification.Event{
		AccountKind: h.kind,
		AccountID:   ownerID,
		Message:     fmt.Sprintf("Reservation %d in room %s was released.", r.ID, r.Room.Name),
	}
}
