package model

import "time"

// Payment bills one or more reservations and may belong to a user.
type Payment struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	TotalPrice float64   `gorm:"not null;default:0" json:"total_price"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`

	UserID *int64 `gorm:"index" json:"user_id,omitempty"`

	// Associations
	Reservations []Reservation `gorm:"foreignKey:PaymentID" json:"-"`
}
