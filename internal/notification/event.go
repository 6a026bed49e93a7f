package notification

import "room-meeting-backend/internal/model"

// Event is a message for every push subscription registered by one account.
type Event struct {
	AccountKind model.AccountKind
	AccountID   int64
	Message     string
}
