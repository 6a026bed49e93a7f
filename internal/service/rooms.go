package service

import (
	"context"
	"time"
	"unicode/utf8"

	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/store"
)

const (
	roomNameMin        = 4
	roomNameMax        = 20
	roomDescriptionMax = 20
)

// RoomService manages rooms.
type RoomService struct{ *base }

// CreateRoomInput carries the fields of a new room.
type CreateRoomInput struct {
	Name         string
	PricePerHour *float64
	Description  string
}

// UpdateRoomInput carries the replacement fields of a room. Name and
// Description are required.
type UpdateRoomInput struct {
	Name         *string
	PricePerHour *float64
	Description  *string
}

// Rooms returns every room.
func (s *RoomService) Rooms(ctx context.Context) ([]model.Room, error) {
	return s.store.ListRooms(ctx)
}

// FreeRooms returns rooms without any reservation.
func (s *RoomService) FreeRooms(ctx context.Context) ([]model.Room, error) {
	return s.store.ListFreeRooms(ctx)
}

// FreeRoomsBetween returns rooms none of whose reservations start or end within [start, end].
func (s *RoomService) FreeRoomsBetween(ctx context.Context, start, end time.Time) ([]model.Room, error) {
	return s.store.ListRoomsFreeBetween(ctx, start.UTC(), end.UTC())
}

// Room returns the room with the given id.
func (s *RoomService) Room(ctx context.Context, id int64) (*model.Room, error) {
	return roomByID(ctx, s.store, id)
}

// RoomByName returns the room with exactly the given name.
func (s *RoomService) RoomByName(ctx context.Context, name string) (*model.Room, error) {
	room, err := s.store.FindRoomByName(ctx, name)
	return found(room, err, "Room with name %s not found.", name)
}

// TopRoomsByPrice returns the n cheapest rooms, or the n most expensive when desc is set.
func (s *RoomService) TopRoomsByPrice(ctx context.Context, n int, desc bool) ([]model.Room, error) {
	rooms, err := s.store.ListRoomsOrdered(ctx, store.RoomOrderPrice, desc)
	if err != nil {
		return nil, err
	}
	return top(rooms, n)
}

// TopRoomsByOccupancy returns the n least occupied rooms.
func (s *RoomService) TopRoomsByOccupancy(ctx context.Context, n int) ([]model.Room, error) {
	rooms, err := s.store.ListRoomsOrdered(ctx, store.RoomOrderOccupancy, false)
	if err != nil {
		return nil, err
	}
	return top(rooms, n)
}

// CreateRoom creates an empty room.
func (s *RoomService) CreateRoom(ctx context.Context, in CreateRoomInput) (*model.Room, error) {
	if in.PricePerHour == nil {
		return nil, apperr.BadRequest("Room price must be set.")
	}
	if err := validateRoom(in.Name, *in.PricePerHour, in.Description); err != nil {
		return nil, err
	}

	room := &model.Room{
		Name:         in.Name,
		PricePerHour: *in.PricePerHour,
		Description:  in.Description,
		CreatedAt:    s.now().UTC(),
		Occupancy:    0,
	}
	err := s.tx(ctx, func(tx store.Store) error {
		exists, err := taken(tx.FindRoomByName(ctx, in.Name))
		if err != nil {
			return err
		}
		if exists {
			return apperr.BadRequest("Room with name %s is already taken.", in.Name)
		}
		return tx.CreateRoom(ctx, room)
	})
	if err != nil {
		return nil, err
	}
	logMutation("room", room.ID, "created")
	return room, nil
}

// UpdateRoom replaces the name, price and description of a room. The name
// must change on every update.
func (s *RoomService) UpdateRoom(ctx context.Context, id int64, in UpdateRoomInput) (*model.Room, error) {
	var room *model.Room
	err := s.tx(ctx, func(tx store.Store) error {
		var err error
		room, err = roomByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if in.Name == nil || *in.Name == room.Name {
			return apperr.BadRequest("Room name already set or not filled.")
		}
		if in.Description == nil || utf8.RuneCountInString(*in.Description) > roomDescriptionMax {
			return apperr.BadRequest("Description must be filled and can contain up to %d characters.", roomDescriptionMax)
		}
		if in.PricePerHour == nil {
			return apperr.BadRequest("Room price must be set.")
		}
		if err := validateRoom(*in.Name, *in.PricePerHour, *in.Description); err != nil {
			return err
		}
		exists, err := taken(tx.FindRoomByName(ctx, *in.Name))
		if err != nil {
			return err
		}
		if exists {
			return apperr.BadRequest("Room with name %s is already taken.", *in.Name)
		}

		room.Name = *in.Name
		room.PricePerHour = *in.PricePerHour
		room.Description = *in.Description
		return tx.SaveRoom(ctx, room)
	})
	if err != nil {
		return nil, err
	}
	logMutation("room", id, "updated")
	return room, nil
}

// DeleteRoom deletes a room nobody references. Its remaining dependents go with it.
func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	err := s.tx(ctx, func(tx store.Store) error {
		if _, err := roomByID(ctx, tx, id); err != nil {
			return err
		}
		referenced, err := tx.RoomHasReservations(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return apperr.BadRequest("Room with id %d is still referenced by a reservation.", id)
		}
		controlled, err := tx.RoomControlled(ctx, id)
		if err != nil {
			return err
		}
		if controlled {
			return apperr.BadRequest("Room with id %d is still controlled by an admin.", id)
		}
		return tx.DeleteRoom(ctx, id)
	})
	if err != nil {
		return err
	}
	logMutation("room", id, "deleted")
	return nil
}

func validateRoom(name string, price float64, description string) error {
	if n := utf8.RuneCountInString(name); n < roomNameMin || n > roomNameMax {
		return apperr.BadRequest("Room name must have between %d and %d characters.", roomNameMin, roomNameMax)
	}
	if price <= 0 {
		return apperr.BadRequest("Room price must be positive.")
	}
	if utf8.RuneCountInString(description) > roomDescriptionMax {
		return apperr.BadRequest("Description must be filled and can contain up to %d characters.", roomDescriptionMax)
	}
	return nil
}
