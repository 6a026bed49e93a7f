package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/model"
)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestPrice(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		rate     float64
		expected float64
	}{
		{name: "two whole hours", start: at(2024, 5, 10, 9, 0), end: at(2024, 5, 10, 11, 0), rate: 100, expected: 200},
		{name: "wraps past midnight", start: at(2024, 5, 10, 23, 0), end: at(2024, 5, 11, 1, 0), rate: 60, expected: 120},
		{name: "negative minute delta", start: at(2024, 5, 10, 9, 30), end: at(2024, 5, 10, 11, 15), rate: 60, expected: 105},
		{name: "same hour", start: at(2024, 5, 10, 10, 0), end: at(2024, 5, 10, 10, 30), rate: 120, expected: 60},
		{name: "date ignored", start: at(2024, 5, 10, 9, 0), end: at(2024, 5, 12, 10, 0), rate: 60, expected: 60},
		{name: "end before start in same hour", start: at(2024, 5, 10, 10, 30), end: at(2024, 5, 10, 10, 0), rate: 60, expected: -30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Price(tc.start, tc.end, tc.rate), 1e-9)
		})
	}
}

func TestReservationPrice(t *testing.T) {
	r := &model.Reservation{Start: at(2024, 5, 10, 9, 0), End: at(2024, 5, 10, 10, 0)}
	assert.Zero(t, ReservationPrice(r, time.UTC))

	r.Room = &model.Room{PricePerHour: 30}
	assert.InDelta(t, 30.0, ReservationPrice(r, time.UTC), 1e-9)
}

func TestMonthEndBound(t *testing.T) {
	now := at(2024, 5, 10, 12, 0)

	bound, ok := MonthEndBound(now, at(2024, 5, 20, 10, 0))
	require.True(t, ok)
	assert.Equal(t, at(2024, 5, 31, 23, 59), bound)

	// end in a 30 day month still bounds in the current month
	bound, ok = MonthEndBound(now, at(2024, 6, 2, 10, 0))
	require.True(t, ok)
	assert.Equal(t, at(2024, 5, 30, 23, 59), bound)

	// 31 days does not exist in April
	_, ok = MonthEndBound(at(2024, 4, 10, 12, 0), at(2024, 5, 2, 10, 0))
	assert.False(t, ok)
}

func TestValidateWindow(t *testing.T) {
	now := at(2024, 5, 10, 12, 0)

	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
		ok    bool
	}{
		{name: "valid", start: at(2024, 5, 11, 9, 0), end: at(2024, 5, 11, 10, 0), ok: true},
		{name: "start in the past", start: at(2024, 5, 9, 9, 0), end: at(2024, 5, 11, 10, 0)},
		{name: "end not after start", start: at(2024, 5, 11, 9, 0), end: at(2024, 5, 11, 9, 0)},
		{name: "end after month bound", start: at(2024, 5, 11, 9, 0), end: at(2024, 6, 1, 0, 0)},
		{name: "end on the bound", start: at(2024, 5, 11, 9, 0), end: at(2024, 5, 31, 23, 59), ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(now, tc.start, tc.end)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.IsBadRequest(err), "expected bad request, got %v", err)
		})
	}
}

func TestCapacity(t *testing.T) {
	r := &model.Reservation{}
	assert.True(t, apperr.IsBadRequest(CheckAttachable(r, 5)))

	r.Room = &model.Room{Occupancy: 4}
	assert.NoError(t, CheckAttachable(r, 5))

	AddToRoom(r.Room)
	assert.Equal(t, 5, r.Room.Occupancy)
	assert.True(t, apperr.IsBadRequest(CheckAttachable(r, 5)))

	require.NoError(t, RemoveFromRoom(r.Room))
	assert.Equal(t, 4, r.Room.Occupancy)

	empty := &model.Room{}
	err := RemoveFromRoom(empty)
	assert.True(t, apperr.IsBadRequest(err))
	assert.Zero(t, empty.Occupancy)
}
