package model

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Room{},
		&Payment{},
		&Reservation{},
		&User{},
		&Admin{},
		&PushSubscription{},
	}
}
