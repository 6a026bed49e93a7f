// Package service implements the entity services of the reservation system.
// Every exported operation runs inside a single store transaction.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"room-meeting-backend/config"
	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/notification"
	"room-meeting-backend/internal/store"
)

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
}

// Notifier receives events after the operation that caused them committed.
type Notifier interface {
	Dispatch(ev notification.Event)
}

// Options configures the services.
type Options struct {
	// Location is the time zone reservation windows and prices are evaluated in.
	Location        *time.Location
	MaxRoomCapacity int
	Now             func() time.Time
	Hasher          Hasher
	// Notifier is optional.
	Notifier Notifier
}

// Services bundles every entity service over one store.
type Services struct {
	Rooms        *RoomService
	Reservations *ReservationService
	Payments     *PaymentService
	Users        *UserService
	Admins       *AdminService
	Auth         *AuthService
	Bootstrap    *Bootstrap
}

// New wires all services to s.
func New(s store.Store, opts Options) *Services {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.MaxRoomCapacity <= 0 {
		opts.MaxRoomCapacity = config.MaxRoomCapacity
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	b := &base{
		store:       s,
		loc:         opts.Location,
		maxCapacity: opts.MaxRoomCapacity,
		now:         opts.Now,
		hasher:      opts.Hasher,
		notifier:    opts.Notifier,
	}
	return &Services{
		Rooms:        &RoomService{b},
		Reservations: &ReservationService{b},
		Payments:     &PaymentService{b},
		Users:        &UserService{b},
		Admins:       &AdminService{b},
		Auth:         &AuthService{b},
		Bootstrap:    &Bootstrap{b},
	}
}

type base struct {
	store       store.Store
	loc         *time.Location
	maxCapacity int
	now         func() time.Time
	hasher      Hasher
	notifier    Notifier
}

// clock returns the current time in the booking location.
func (b *base) clock() time.Time {
	return b.now().In(b.loc)
}

func (b *base) tx(ctx context.Context, fn func(tx store.Store) error) error {
	return b.store.Transaction(ctx, fn)
}

func (b *base) notify(events ...notification.Event) {
	if b.notifier == nil {
		return
	}
	for _, ev := range events {
		b.notifier.Dispatch(ev)
	}
}

// found maps store.ErrNotFound to a NOT_FOUND error with the given message.
func found[T any](v *T, err error, format string, args ...any) (*T, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(format, args...)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// taken reports whether a lookup by a unique field found a row.
func taken[T any](_ *T, err error) (bool, error) {
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// top returns the first n items, failing when n is out of range.
func top[T any](items []T, n int) ([]T, error) {
	if n < 0 {
		return nil, apperr.BadRequest("Top number must not be negative.")
	}
	if n > len(items) {
		return nil, apperr.BadRequest("Maximum top number is: %d.", len(items))
	}
	return items[:n], nil
}

func logMutation(entity string, id int64, action string) {
	log.Debug().Str("entity", entity).Int64("id", id).Msgf("successfully %s", action)
}

func roomByID(ctx context.Context, st store.Store, id int64) (*model.Room, error) {
	room, err := st.GetRoom(ctx, id)
	return found(room, err, "Room with id %d not found.", id)
}

func reservationByID(ctx context.Context, st store.Store, id int64) (*model.Reservation, error) {
	r, err := st.GetReservation(ctx, id)
	return found(r, err, "Reservation with id %d not found.", id)
}

func paymentByID(ctx context.Context, st store.Store, id int64) (*model.Payment, error) {
	p, err := st.GetPayment(ctx, id)
	return found(p, err, "Payment with id %d not found.", id)
}

func userByID(ctx context.Context, st store.Store, id int64) (*model.User, error) {
	u, err := st.GetUser(ctx, id)
	return found(u, err, "User with id %d not found.", id)
}

func adminByID(ctx context.Context, st store.Store, id int64) (*model.Admin, error) {
	a, err := st.GetAdmin(ctx, id)
	return found(a, err, "Admin with id %d not found.", id)
}
