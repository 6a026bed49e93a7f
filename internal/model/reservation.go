package model

import "time"

// Reservation is a time window that may be assigned to a room and billed by a payment.
type Reservation struct {
	ID    int64     `gorm:"primaryKey" json:"id"`
	Start time.Time `gorm:"column:reservation_start;not null;index" json:"reservation_start"`
	End   time.Time `gorm:"column:reservation_end;not null;index" json:"reservation_end"`
	Price float64   `gorm:"column:reservation_price;not null;default:0" json:"reservation_price"`

	RoomID    *int64 `gorm:"index" json:"room_id,omitempty"`
	PaymentID *int64 `gorm:"index" json:"payment_id,omitempty"`

	// Associations
	Room    *Room    `json:"-"`
	Payment *Payment `json:"-"`
}

// TableName overrides the default table name.
func (Reservation) TableName() string {
	return "room_reservations"
}
