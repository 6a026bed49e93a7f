package service

import (
	"context"
	"time"

	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/booking"
	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/store"
)

// PaymentService manages payments. A payment's total is the sum of the
// prices of the reservations it covers.
type PaymentService struct{ *base }

// Payments returns every payment.
func (s *PaymentService) Payments(ctx context.Context) ([]model.Payment, error) {
	return s.store.ListPayments(ctx)
}

// Payment returns the payment with the given id with a freshly computed total.
func (s *PaymentService) Payment(ctx context.Context, id int64) (*model.Payment, error) {
	var p *model.Payment
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		if p, err = paymentByID(ctx, tx, id); err != nil {
			return err
		}
		return s.refreshPaymentTotalOf(ctx, tx, p)
	})
	return p, err
}

// PaymentsSince returns payments created after start.
func (s *PaymentService) PaymentsSince(ctx context.Context, start *time.Time) ([]model.Payment, error) {
	if start == nil {
		return nil, apperr.BadRequest("Start time must be set.")
	}
	return s.store.ListPaymentsCreatedAfter(ctx, start.UTC())
}

// CreatePayment creates a payment covering the given reservation.
func (s *PaymentService) CreatePayment(ctx context.Context, reservationID int64) (*model.Payment, error) {
	p := &model.Payment{CreatedAt: s.now().UTC()}
	err := s.tx(ctx, func(tx store.Store) error {
		r, err := reservationByID(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}
		if err := s.linkPayment(ctx, tx, r, p.ID); err != nil {
			return err
		}
		return s.refreshPaymentTotalOf(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	logMutation("payment", p.ID, "created")
	return p, nil
}

// AddPaymentReservation puts a reservation under the payment.
func (s *PaymentService) AddPaymentReservation(ctx context.Context, id, reservationID int64) (*model.Payment, error) {
	var p *model.Payment
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		if p, err = paymentByID(ctx, tx, id); err != nil {
			return err
		}
		r, err := reservationByID(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if err := s.linkPayment(ctx, tx, r, p.ID); err != nil {
			return err
		}
		return s.refreshPaymentTotalOf(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}
	logMutation("payment", id, "added a reservation")
	return p, nil
}

// DeletePayment deletes the payment. Its reservations stay, unpaid.
func (s *PaymentService) DeletePayment(ctx context.Context, id int64) error {
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := paymentByID(ctx, tx, id); err != nil {
			return err
		}
		return tx.DeletePayment(ctx, id)
	})
	if err != nil {
		return err
	}
	logMutation("payment", id, "deleted")
	return nil
}

// linkPayment points r at the payment, re-totalling the payment r leaves.
func (b *base) linkPayment(ctx context.Context, tx store.Store, r *model.Reservation, paymentID int64) error {
	previous := r.PaymentID
	r.PaymentID = &paymentID
	if err := tx.SaveReservation(ctx, r); err != nil {
		return err
	}
	if previous != nil && *previous != paymentID {
		return b.refreshPaymentTotal(ctx, tx, *previous)
	}
	return nil
}

func (b *base) refreshPaymentTotal(ctx context.Context, tx store.Store, paymentID int64) error {
	p, err := paymentByID(ctx, tx, paymentID)
	if err != nil {
		return err
	}
	return b.refreshPaymentTotalOf(ctx, tx, p)
}

// refreshPaymentTotalOf sets p's total to the sum of its reservations' prices.
func (b *base) refreshPaymentTotalOf(ctx context.Context, tx store.Store, p *model.Payment) error {
	reservations, err := tx.ListPaymentReservations(ctx, p.ID)
	if err != nil {
		return err
	}
	var total float64
	for i := range reservations {
		total += booking.ReservationPrice(&reservations[i], b.loc)
	}
	if total == p.TotalPrice {
		return nil
	}
	p.TotalPrice = total
	return tx.SavePayment(ctx, p)
}
