package booking

import (
	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/model"
)

// CheckAttachable verifies that an account may take r: it must be assigned to
// a room that still has space.
func CheckAttachable(r *model.Reservation, maxCapacity int) error {
	if r.Room == nil {
		return apperr.BadRequest("Room reservation is null.")
	}
	if r.Room.Occupancy >= maxCapacity {
		return apperr.BadRequest("Room capacity is full.")
	}
	return nil
}

// AddToRoom increments the room's occupancy.
func AddToRoom(room *model.Room) {
	room.Occupancy++
}

// RemoveFromRoom decrements the room's occupancy, refusing to go below zero.
func RemoveFromRoom(room *model.Room) error {
	if room.Occupancy <= 0 {
		return apperr.BadRequest("Room is already empty.")
	}
	room.Occupancy--
	return nil
}
