package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_Totals(t *testing.T) {
	f := newFixture(t)
	room := f.room(60)
	first := f.bookedReservation(room, 9, 10)

	_, err := f.svc.Payments.CreatePayment(f.ctx, 999)
	assertNotFound(t, err)

	loaded, err := f.svc.Reservations.Reservation(f.ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.PaymentID)
	p, err := f.svc.Payments.Payment(f.ctx, *loaded.PaymentID)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, p.TotalPrice, 1e-9)

	second := f.bookedReservation(room, 12, 14)
	previous, err := f.svc.Reservations.Reservation(f.ctx, second.ID)
	require.NoError(t, err)

	combined, err := f.svc.Payments.AddPaymentReservation(f.ctx, p.ID, second.ID)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, combined.TotalPrice, 1e-9)

	// the payment the second reservation left is re-totalled
	left, err := f.svc.Payments.Payment(f.ctx, *previous.PaymentID)
	require.NoError(t, err)
	assert.Zero(t, left.TotalPrice)

	_, err = f.svc.Payments.AddPaymentReservation(f.ctx, 999, second.ID)
	assertNotFound(t, err)
	_, err = f.svc.Payments.AddPaymentReservation(f.ctx, p.ID, 999)
	assertNotFound(t, err)
}

func TestPaymentService_DeleteAndSince(t *testing.T) {
	f := newFixture(t)
	r := f.reservation(9, 10)
	p, err := f.svc.Payments.CreatePayment(f.ctx, r.ID)
	require.NoError(t, err)

	_, err = f.svc.Payments.PaymentsSince(f.ctx, nil)
	assertBadRequest(t, err, "")

	since, err := f.svc.Payments.PaymentsSince(f.ctx, ptr(f.now.Add(-time.Hour)))
	require.NoError(t, err)
	assert.Len(t, since, 1)

	none, err := f.svc.Payments.PaymentsSince(f.ctx, ptr(f.now.Add(time.Hour)))
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, f.svc.Payments.DeletePayment(f.ctx, p.ID))
	assertNotFound(t, f.svc.Payments.DeletePayment(f.ctx, p.ID))

	unpaid, err := f.svc.Reservations.Reservation(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Nil(t, unpaid.PaymentID)

	all, err := f.svc.Payments.Payments(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
