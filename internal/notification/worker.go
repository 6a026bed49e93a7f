package notification

import (
	"context"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog/log"

	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/store"
)

// queueDepth is how many events each worker may have waiting.
const queueDepth = 32

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool delivers events to the push subscriptions of their account.
type WorkerPool struct {
	size          int
	jobs          chan Event
	subscriptions store.SubscriptionStore
	webpush       *webpush.Options
	sender        NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, subscriptions store.SubscriptionStore, webpushOptions *webpush.Options) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:          size,
		jobs:          make(chan Event, size*queueDepth),
		subscriptions: subscriptions,
		webpush:       webpushOptions,
		sender:        &WebPushSender{},
	}
}

// Start launches the worker goroutines. They stop when ctx is cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	logger := log.With().Int("worker", id).Logger()
	logger.Debug().Msg("notification worker started")
	for {
		select {
		case ev := <-wp.jobs:
			wp.deliver(ctx, ev)
		case <-ctx.Done():
			logger.Debug().Msg("notification worker shutting down")
			return
		}
	}
}

// Dispatch queues an event. Events are dropped when the queue is full.
func (wp *WorkerPool) Dispatch(ev Event) {
	select {
	case wp.jobs <- ev:
	default:
		log.Warn().
			Str("account_kind", string(ev.AccountKind)).
			Int64("account_id", ev.AccountID).
			Msg("notification queue full, dropping event")
	}
}

// deliver sends ev to every subscription of its account.
func (wp *WorkerPool) deliver(ctx context.Context, ev Event) {
	subs, err := wp.subscriptions.ListSubscriptions(ctx, ev.AccountKind, ev.AccountID)
	if err != nil {
		log.Error().Err(err).Int64("account_id", ev.AccountID).Msg("failed to fetch subscriptions")
		return
	}
	if len(subs) == 0 {
		return
	}

	log.Debug().Int("count", len(subs)).Int64("account_id", ev.AccountID).Msg("sending notifications")
	for _, sub := range subs {
		wp.send(ctx, sub, []byte(ev.Message))
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to send notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Info().Str("endpoint", sub.Endpoint).Msg("subscription expired, deleting")
		if _, err := wp.subscriptions.DeleteSubscription(ctx, sub.AccountKind, sub.AccountID, sub.Endpoint); err != nil {
			log.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to delete expired subscription")
		}
	}
}
