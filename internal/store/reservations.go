package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"room-meeting-backend/internal/model"
)

// ReservationStore persists reservations. Loaded reservations carry their Room.
type ReservationStore interface {
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	ListReservationsByPrice(ctx context.Context, desc bool) ([]model.Reservation, error)
	ListReservationsBetween(ctx context.Context, start, end time.Time) ([]model.Reservation, error)
	ListReservationsStartingAfter(ctx context.Context, after time.Time) ([]model.Reservation, error)
	ListReservationsEndingBefore(ctx context.Context, before time.Time) ([]model.Reservation, error)
	ListPaymentReservations(ctx context.Context, paymentID int64) ([]model.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*model.Reservation, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
	SaveReservation(ctx context.Context, r *model.Reservation) error
	ReservationHeldByUser(ctx context.Context, id int64) (bool, error)
	DeleteReservation(ctx context.Context, id int64) error
}

func (s *gormStore) listReservations(ctx context.Context, what string, scope func(q *gorm.DB) *gorm.DB) ([]model.Reservation, error) {
	var reservations []model.Reservation
	q := scope(s.conn(ctx).Preload("Room"))
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	return reservations, nil
}

func (s *gormStore) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.listReservations(ctx, "reservations", func(q *gorm.DB) *gorm.DB {
		return q.Order("id")
	})
}

func (s *gormStore) ListReservationsByPrice(ctx context.Context, desc bool) ([]model.Reservation, error) {
	return s.listReservations(ctx, "reservations by price", func(q *gorm.DB) *gorm.DB {
		return q.Order(clause.OrderByColumn{Column: clause.Column{Name: "reservation_price"}, Desc: desc}).Order("id")
	})
}

// ListReservationsBetween returns reservations whose start or end lies in
// [start, end], bounds included.
func (s *gormStore) ListReservationsBetween(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	return s.listReservations(ctx, "reservations in window", func(q *gorm.DB) *gorm.DB {
		return q.
			Where("reservation_start BETWEEN ? AND ? OR reservation_end BETWEEN ? AND ?", start, end, start, end).
			Order("reservation_start").
			Order("id")
	})
}

func (s *gormStore) ListReservationsStartingAfter(ctx context.Context, after time.Time) ([]model.Reservation, error) {
	return s.listReservations(ctx, "reservations by start", func(q *gorm.DB) *gorm.DB {
		return q.Where("reservation_start > ?", after).Order("reservation_start").Order("id")
	})
}

func (s *gormStore) ListReservationsEndingBefore(ctx context.Context, before time.Time) ([]model.Reservation, error) {
	return s.listReservations(ctx, "reservations by end", func(q *gorm.DB) *gorm.DB {
		return q.Where("reservation_end < ?", before).Order("reservation_end").Order("id")
	})
}

func (s *gormStore) ListPaymentReservations(ctx context.Context, paymentID int64) ([]model.Reservation, error) {
	return s.listReservations(ctx, "payment reservations", func(q *gorm.DB) *gorm.DB {
		return q.Where("payment_id = ?", paymentID).Order("id")
	})
}

func (s *gormStore) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	var r model.Reservation
	if err := first(s.conn(ctx).Preload("Room"), &r, "reservation", id); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *gormStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (s *gormStore) SaveReservation(ctx context.Context, r *model.Reservation) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(r).Error; err != nil {
		return fmt.Errorf("failed to save reservation %d: %w", r.ID, err)
	}
	return nil
}

func (s *gormStore) ReservationHeldByUser(ctx context.Context, id int64) (bool, error) {
	return exists(s.conn(ctx).Table("user_has_reservation").Where("reservation_id = ?", id), "reservation holders")
}

// DeleteReservation removes the reservation and the admin holdings pointing at it.
func (s *gormStore) DeleteReservation(ctx context.Context, id int64) error {
	db := s.conn(ctx)
	if err := db.Exec("DELETE FROM admin_has_reservation WHERE reservation_id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete admin holdings of reservation %d: %w", id, err)
	}
	if err := db.Delete(&model.Reservation{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", id, err)
	}
	return nil
}
