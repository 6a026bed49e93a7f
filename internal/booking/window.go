package booking

import (
	"time"

	"room-meeting-backend/internal/apperr"
)

// MonthEndBound returns the latest permitted reservation end for a window
// ending at end, evaluated at now: day D at 23:59 of now's year and month,
// where D is the number of days in end's month. ok is false when D does not
// exist in now's month.
func MonthEndBound(now, end time.Time) (bound time.Time, ok bool) {
	loc := now.Location()
	end = end.In(loc)
	day := daysIn(end.Year(), end.Month(), loc)
	if day > daysIn(now.Year(), now.Month(), loc) {
		return time.Time{}, false
	}
	return time.Date(now.Year(), now.Month(), day, 23, 59, 0, 0, loc), true
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// StartAllowed reports whether start is not before now.
func StartAllowed(now, start time.Time) bool {
	return !start.Before(now)
}

// EndAllowed reports whether end is after start and within the month-end bound.
func EndAllowed(now, start, end time.Time) bool {
	if !end.After(start) {
		return false
	}
	bound, ok := MonthEndBound(now, end)
	return ok && !end.After(bound)
}

// ValidateWindow checks a new reservation window against now.
func ValidateWindow(now, start, end time.Time) error {
	if !StartAllowed(now, start) {
		return apperr.BadRequest("Time you set is less than current time.")
	}
	if !end.After(start) {
		return apperr.BadRequest("Reservation end must be after its start.")
	}
	bound, ok := MonthEndBound(now, end)
	if !ok {
		return apperr.BadRequest("Reservation end cannot be bounded within the current month.")
	}
	if end.After(bound) {
		return apperr.BadRequest("Reservation end must not be after %s.", bound.Format("2006-01-02 15:04"))
	}
	return nil
}
