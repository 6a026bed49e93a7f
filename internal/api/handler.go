package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"room-meeting-backend/internal/auth"
	"room-meeting-backend/internal/service"
	"room-meeting-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	services      *service.Services
	issuer        *auth.Issuer
	subscriptions store.SubscriptionStore
	webpush       *webpush.Options
	loc           *time.Location
}

// NewHandler creates a new API handler. webpushOptions may be nil when push
// notifications are disabled.
func NewHandler(services *service.Services, issuer *auth.Issuer, subscriptions store.SubscriptionStore, webpushOptions *webpush.Options, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		services:      services,
		issuer:        issuer,
		subscriptions: subscriptions,
		webpush:       webpushOptions,
		loc:           loc,
	}
}
