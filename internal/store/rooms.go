package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"room-meeting-backend/internal/model"
)

// RoomOrder selects the column a sorted room view is ordered by.
type RoomOrder string

const (
	RoomOrderPrice     RoomOrder = "price_per_hour"
	RoomOrderOccupancy RoomOrder = "room_capacity"
)

// RoomStore persists rooms.
type RoomStore interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	ListRoomsOrdered(ctx context.Context, order RoomOrder, desc bool) ([]model.Room, error)
	ListFreeRooms(ctx context.Context) ([]model.Room, error)
	ListRoomsFreeBetween(ctx context.Context, start, end time.Time) ([]model.Room, error)
	GetRoom(ctx context.Context, id int64) (*model.Room, error)
	FindRoomByName(ctx context.Context, name string) (*model.Room, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	SaveRoom(ctx context.Context, room *model.Room) error
	RoomHasReservations(ctx context.Context, id int64) (bool, error)
	RoomControlled(ctx context.Context, id int64) (bool, error)
	DeleteRoom(ctx context.Context, id int64) error
}

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.conn(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) ListRoomsOrdered(ctx context.Context, order RoomOrder, desc bool) ([]model.Room, error) {
	var rooms []model.Room
	err := s.conn(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: string(order)}, Desc: desc}).
		Order("id").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by %s: %w", order, err)
	}
	return rooms, nil
}

// ListFreeRooms returns rooms that no reservation references.
func (s *gormStore) ListFreeRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := s.conn(ctx).
		Where("NOT EXISTS (SELECT 1 FROM room_reservations r WHERE r.room_id = rooms.id)").
		Order("id").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list free rooms: %w", err)
	}
	return rooms, nil
}

// ListRoomsFreeBetween returns rooms with no reservation whose start or end
// falls within [start, end].
func (s *gormStore) ListRoomsFreeBetween(ctx context.Context, start, end time.Time) ([]model.Room, error) {
	var rooms []model.Room
	err := s.conn(ctx).
		Where("NOT EXISTS (SELECT 1 FROM room_reservations r WHERE r.room_id = rooms.id AND "+
			"(r.reservation_start BETWEEN ? AND ? OR r.reservation_end BETWEEN ? AND ?))",
			start, end, start, end).
		Order("id").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms free between %s and %s: %w", start, end, err)
	}
	return rooms, nil
}

func (s *gormStore) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	if err := first(s.conn(ctx), &room, "room", id); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *gormStore) FindRoomByName(ctx context.Context, name string) (*model.Room, error) {
	var room model.Room
	if err := first(s.conn(ctx).Where("name = ?", name), &room, "room"); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room %q: %w", room.Name, err)
	}
	return nil
}

func (s *gormStore) SaveRoom(ctx context.Context, room *model.Room) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(room).Error; err != nil {
		return fmt.Errorf("failed to save room %d: %w", room.ID, err)
	}
	return nil
}

func (s *gormStore) RoomHasReservations(ctx context.Context, id int64) (bool, error) {
	return exists(s.conn(ctx).Model(&model.Reservation{}).Where("room_id = ?", id), "room reservations")
}

func (s *gormStore) RoomControlled(ctx context.Context, id int64) (bool, error) {
	return exists(s.conn(ctx).Table("admin_control_room").Where("room_id = ?", id), "room controllers")
}

// DeleteRoom removes the room together with its reservations and every join
// row pointing at either.
func (s *gormStore) DeleteRoom(ctx context.Context, id int64) error {
	db := s.conn(ctx)
	steps := []struct {
		what string
		sql  string
	}{
		{"user holdings", "DELETE FROM user_has_reservation WHERE reservation_id IN (SELECT id FROM room_reservations WHERE room_id = ?)"},
		{"admin holdings", "DELETE FROM admin_has_reservation WHERE reservation_id IN (SELECT id FROM room_reservations WHERE room_id = ?)"},
		{"reservations", "DELETE FROM room_reservations WHERE room_id = ?"},
		{"admin control", "DELETE FROM admin_control_room WHERE room_id = ?"},
	}
	for _, step := range steps {
		if err := db.Exec(step.sql, id).Error; err != nil {
			return fmt.Errorf("failed to delete %s of room %d: %w", step.what, id, err)
		}
	}
	if err := db.Delete(&model.Room{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	return nil
}
