package service

import (
	"context"
	"time"

	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/booking"
	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/store"
)

// ReservationService manages reservations and their pricing.
type ReservationService struct{ *base }

// Reservations returns every reservation with a freshly computed price.
func (s *ReservationService) Reservations(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		reservations, err = tx.ListReservations(ctx)
		if err != nil {
			return err
		}
		for i := range reservations {
			if err := s.refreshPrice(ctx, tx, &reservations[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return reservations, err
}

// Reservation returns the reservation with the given id with a freshly computed price.
func (s *ReservationService) Reservation(ctx context.Context, id int64) (*model.Reservation, error) {
	var r *model.Reservation
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		if r, err = reservationByID(ctx, tx, id); err != nil {
			return err
		}
		return s.refreshPrice(ctx, tx, r)
	})
	return r, err
}

// TopReservationsByPrice returns the n cheapest reservations, or the n most
// expensive when desc is set.
func (s *ReservationService) TopReservationsByPrice(ctx context.Context, n int, desc bool) ([]model.Reservation, error) {
	reservations, err := s.store.ListReservationsByPrice(ctx, desc)
	if err != nil {
		return nil, err
	}
	return top(reservations, n)
}

// ReservationsBetween returns reservations starting or ending within [start, end].
func (s *ReservationService) ReservationsBetween(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	return s.store.ListReservationsBetween(ctx, start.UTC(), end.UTC())
}

// ReservationsStartingAfter returns reservations that start after the given time.
func (s *ReservationService) ReservationsStartingAfter(ctx context.Context, after *time.Time) ([]model.Reservation, error) {
	if after == nil {
		return nil, apperr.BadRequest("Start time must be set.")
	}
	return s.store.ListReservationsStartingAfter(ctx, after.UTC())
}

// ReservationsEndingBefore returns reservations that end before the given time.
func (s *ReservationService) ReservationsEndingBefore(ctx context.Context, before *time.Time) ([]model.Reservation, error) {
	if before == nil {
		return nil, apperr.BadRequest("End time must be set.")
	}
	return s.store.ListReservationsEndingBefore(ctx, before.UTC())
}

// CreateReservation creates an unpriced reservation without a room.
func (s *ReservationService) CreateReservation(ctx context.Context, start, end time.Time) (*model.Reservation, error) {
	if err := booking.ValidateWindow(s.clock(), start.In(s.loc), end.In(s.loc)); err != nil {
		return nil, err
	}

	r := &model.Reservation{Start: start.UTC(), End: end.UTC(), Price: 0}
	if err := s.tx(ctx, func(tx store.Store) error {
		return tx.CreateReservation(ctx, r)
	}); err != nil {
		return nil, err
	}
	logMutation("reservation", r.ID, "created")
	return r, nil
}

// AddReservationRoom assigns a room to a paid reservation and prices it.
func (s *ReservationService) AddReservationRoom(ctx context.Context, reservationID, roomID int64) (*model.Reservation, error) {
	var r *model.Reservation
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		if r, err = reservationByID(ctx, tx, reservationID); err != nil {
			return err
		}
		room, err := roomByID(ctx, tx, roomID)
		if err != nil {
			return err
		}
		if r.PaymentID == nil {
			return apperr.BadRequest("Room cannot be added until payment is not set.")
		}

		r.RoomID = &room.ID
		r.Room = room
		r.Price = booking.ReservationPrice(r, s.loc)
		if err := tx.SaveReservation(ctx, r); err != nil {
			return err
		}
		return s.refreshPaymentTotal(ctx, tx, *r.PaymentID)
	})
	if err != nil {
		return nil, err
	}
	logMutation("reservation", reservationID, "assigned a room")
	return r, nil
}

// UpdateReservation moves the start and/or end of a reservation. Each value
// is applied only when given, different from the stored one and within the
// bounds a new reservation would have to respect; otherwise it is ignored.
func (s *ReservationService) UpdateReservation(ctx context.Context, id int64, start, end *time.Time) (*model.Reservation, error) {
	var r *model.Reservation
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		if r, err = reservationByID(ctx, tx, id); err != nil {
			return err
		}

		now := s.clock()
		if start != nil && !start.Equal(r.Start) && booking.StartAllowed(now, start.In(s.loc)) {
			r.Start = start.UTC()
		}
		if end != nil && !end.Equal(r.End) && booking.EndAllowed(now, r.Start.In(s.loc), end.In(s.loc)) {
			r.End = end.UTC()
		}

		r.Price = booking.ReservationPrice(r, s.loc)
		if err := tx.SaveReservation(ctx, r); err != nil {
			return err
		}
		if r.PaymentID != nil {
			return s.refreshPaymentTotal(ctx, tx, *r.PaymentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logMutation("reservation", id, "updated")
	return r, nil
}

// DeleteReservation deletes a reservation no user holds.
func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) error {
	err := s.tx(ctx, func(tx store.Store) error {
		r, err := reservationByID(ctx, tx, id)
		if err != nil {
			return err
		}
		held, err := tx.ReservationHeldByUser(ctx, id)
		if err != nil {
			return err
		}
		if held {
			return apperr.BadRequest("Reservation with id %d is still held by a user.", id)
		}
		if err := tx.DeleteReservation(ctx, id); err != nil {
			return err
		}
		if r.PaymentID != nil {
			return s.refreshPaymentTotal(ctx, tx, *r.PaymentID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logMutation("reservation", id, "deleted")
	return nil
}

// refreshPrice recomputes r's price and persists it when it changed.
func (b *base) refreshPrice(ctx context.Context, tx store.Store, r *model.Reservation) error {
	price := booking.ReservationPrice(r, b.loc)
	if price == r.Price {
		return nil
	}
	r.Price = price
	return tx.SaveReservation(ctx, r)
}
