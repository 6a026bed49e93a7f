package model

import "time"

// AccountKind distinguishes the two profile tables.
type AccountKind string

const (
	AccountUser  AccountKind = "user"
	AccountAdmin AccountKind = "admin"
)

// PushSubscription holds the information for a browser push subscription
// registered by an account.
type PushSubscription struct {
	Endpoint    string      `gorm:"primaryKey" json:"endpoint"`
	P256DH      string      `gorm:"column:p256dh;not null" json:"-"`
	Auth        string      `gorm:"not null" json:"-"`
	AccountKind AccountKind `gorm:"size:8;not null;index:idx_push_owner" json:"account_kind"`
	AccountID   int64       `gorm:"not null;index:idx_push_owner" json:"account_id"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}
