// Package booking holds the pure reservation rules: pricing, the booking
// window and room occupancy bookkeeping.
package booking

import (
	"time"

	"room-meeting-backend/internal/model"
)

// Price computes the cost of the window [start, end] at the given hourly rate.
//
// Only the hour-of-day and minute-of-hour components take part. A start hour
// later than the end hour wraps past midnight. The minute delta may be
// negative. Dates are ignored, so windows spanning several days are not
// priced by their real duration.
func Price(start, end time.Time, pricePerHour float64) float64 {
	deltaHour := start.Hour() - end.Hour()
	if deltaHour > 0 {
		deltaHour = 24 - deltaHour
	} else {
		deltaHour = -deltaHour
	}
	deltaMinute := end.Minute() - start.Minute()
	minutes := float64(deltaHour*60 + deltaMinute)
	return (minutes / 60.0) * pricePerHour
}

// ReservationPrice prices r using its room's hourly rate, or returns 0 when
// no room is assigned. Times are read in loc.
func ReservationPrice(r *model.Reservation, loc *time.Location) float64 {
	if r.Room == nil {
		return 0
	}
	return Price(r.Start.In(loc), r.End.In(loc), r.Room.PricePerHour)
}
