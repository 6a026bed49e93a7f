package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationService_CreateReservation(t *testing.T) {
	f := newFixture(t)

	r, err := f.svc.Reservations.CreateReservation(f.ctx, f.tomorrow(9, 0), f.tomorrow(10, 0))
	require.NoError(t, err)
	assert.Zero(t, r.Price)
	assert.Nil(t, r.RoomID)

	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{name: "start in the past", start: f.now.Add(-time.Minute), end: f.tomorrow(10, 0)},
		{name: "end before start", start: f.tomorrow(10, 0), end: f.tomorrow(9, 0)},
		{name: "end past the month", start: f.tomorrow(10, 0), end: time.Date(2030, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Reservations.CreateReservation(f.ctx, tc.start, tc.end)
			assertBadRequest(t, err, "")
		})
	}
}

func TestReservationService_AddReservationRoom(t *testing.T) {
	f := newFixture(t)
	room := f.room(100)
	r := f.reservation(9, 11)

	_, err := f.svc.Reservations.AddReservationRoom(f.ctx, r.ID, room.ID)
	assertBadRequest(t, err, "Room cannot be added until payment is not set.")

	_, err = f.svc.Reservations.AddReservationRoom(f.ctx, 999, room.ID)
	assertNotFound(t, err)
	_, err = f.svc.Reservations.AddReservationRoom(f.ctx, r.ID, 999)
	assertNotFound(t, err)

	payment, err := f.svc.Payments.CreatePayment(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Zero(t, payment.TotalPrice)

	priced, err := f.svc.Reservations.AddReservationRoom(f.ctx, r.ID, room.ID)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, priced.Price, 1e-9)

	loaded, err := f.svc.Reservations.Reservation(f.ctx, r.ID)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, loaded.Price, 1e-9)
	require.NotNil(t, loaded.RoomID)
	assert.Equal(t, room.ID, *loaded.RoomID)

	reloaded, err := f.svc.Payments.Payment(f.ctx, payment.ID)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, reloaded.TotalPrice, 1e-9)
}

func TestReservationService_UpdateReservation(t *testing.T) {
	f := newFixture(t)
	room := f.room(60)
	r := f.bookedReservation(room, 9, 10)

	_, err := f.svc.Reservations.UpdateReservation(f.ctx, 999, nil, nil)
	assertNotFound(t, err)

	// an invalid start is ignored while a valid end is applied
	past := f.now.Add(-time.Hour)
	newEnd := f.tomorrow(11, 30)
	updated, err := f.svc.Reservations.UpdateReservation(f.ctx, r.ID, &past, &newEnd)
	require.NoError(t, err)
	assert.True(t, updated.Start.Equal(f.tomorrow(9, 0)))
	assert.True(t, updated.End.Equal(newEnd))
	assert.InDelta(t, 150.0, updated.Price, 1e-9)

	// nil values leave the window untouched
	unchanged, err := f.svc.Reservations.UpdateReservation(f.ctx, r.ID, nil, nil)
	require.NoError(t, err)
	assert.True(t, unchanged.End.Equal(newEnd))

	// an end outside the month is ignored
	tooLate := time.Date(2030, time.March, 1, 0, 0, 0, 0, time.UTC)
	ignored, err := f.svc.Reservations.UpdateReservation(f.ctx, r.ID, nil, &tooLate)
	require.NoError(t, err)
	assert.True(t, ignored.End.Equal(newEnd))
}

func TestReservationService_DeleteReservation(t *testing.T) {
	f := newFixture(t)
	room := f.room(60)
	held := f.bookedReservation(room, 9, 10)
	user := f.user()
	_, err := f.svc.Users.AddUserReservation(f.ctx, user.ID, held.ID)
	require.NoError(t, err)

	assertBadRequest(t, f.svc.Reservations.DeleteReservation(f.ctx, held.ID), "")
	assertNotFound(t, f.svc.Reservations.DeleteReservation(f.ctx, 999))

	require.NoError(t, f.svc.Users.DeleteReservationFromUser(f.ctx, user.ID, held.ID))
	require.NoError(t, f.svc.Reservations.DeleteReservation(f.ctx, held.ID))
	_, err = f.svc.Reservations.Reservation(f.ctx, held.ID)
	assertNotFound(t, err)
}

func TestReservationService_Views(t *testing.T) {
	f := newFixture(t)
	room := f.room(60)
	short := f.bookedReservation(room, 9, 10)
	long := f.bookedReservation(room, 12, 15)
	unpriced := f.reservation(16, 17)

	_, err := f.svc.Reservations.TopReservationsByPrice(f.ctx, 4, false)
	assertBadRequest(t, err, "Maximum top number is: 3.")

	asc, err := f.svc.Reservations.TopReservationsByPrice(f.ctx, 3, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{unpriced.ID, short.ID, long.ID}, []int64{asc[0].ID, asc[1].ID, asc[2].ID})

	desc, err := f.svc.Reservations.TopReservationsByPrice(f.ctx, 1, true)
	require.NoError(t, err)
	assert.Equal(t, long.ID, desc[0].ID)

	between, err := f.svc.Reservations.ReservationsBetween(f.ctx, f.tomorrow(9, 30), f.tomorrow(12, 0))
	require.NoError(t, err)
	assert.Len(t, between, 2)

	_, err = f.svc.Reservations.ReservationsStartingAfter(f.ctx, nil)
	assertBadRequest(t, err, "")
	after, err := f.svc.Reservations.ReservationsStartingAfter(f.ctx, ptr(f.tomorrow(11, 0)))
	require.NoError(t, err)
	assert.Equal(t, []int64{long.ID, unpriced.ID}, []int64{after[0].ID, after[1].ID})

	_, err = f.svc.Reservations.ReservationsEndingBefore(f.ctx, nil)
	assertBadRequest(t, err, "")
	before, err := f.svc.Reservations.ReservationsEndingBefore(f.ctx, ptr(f.tomorrow(11, 0)))
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, short.ID, before[0].ID)

	all, err := f.svc.Reservations.Reservations(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
