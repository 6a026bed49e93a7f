package model

import "time"

// Room is a bookable meeting room.
type Room struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:20;not null" json:"name"`
	PricePerHour float64   `gorm:"not null" json:"price_per_hour"`
	Description  string    `gorm:"size:20" json:"description"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	// Occupancy counts the reservations currently assigned to the room.
	Occupancy int `gorm:"column:room_capacity;not null;default:0" json:"room_capacity"`

	// Associations
	Reservations []Reservation `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}
