package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-meeting-backend/config"
	"room-meeting-backend/internal/apperr"
	"room-meeting-backend/internal/auth"
	"room-meeting-backend/internal/db"
	"room-meeting-backend/internal/model"
	"room-meeting-backend/internal/notification"
	"room-meeting-backend/internal/store"
)

// recordingNotifier collects dispatched events.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Dispatch(ev notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) Events() []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Event(nil), n.events...)
}

// fixture is a fresh database with services over it and a frozen clock.
type fixture struct {
	t        *testing.T
	ctx      context.Context
	store    store.Store
	svc      *Services
	now      time.Time
	notifier *recordingNotifier
	seq      int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := db.Init(&config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      "file:" + name + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		store:    store.NewGormStore(gormDB),
		now:      time.Date(2030, time.January, 10, 12, 0, 0, 0, time.UTC),
		notifier: &recordingNotifier{},
	}
	f.svc = New(f.store, Options{
		Location:        time.UTC,
		MaxRoomCapacity: config.MaxRoomCapacity,
		Now:             func() time.Time { return f.now },
		Hasher:          auth.NewBcryptHasher(4),
		Notifier:        f.notifier,
	})
	return f
}

func (f *fixture) next() int {
	f.seq++
	return f.seq
}

// tomorrow returns the given wall clock time on the day after f.now.
func (f *fixture) tomorrow(hour, minute int) time.Time {
	return time.Date(f.now.Year(), f.now.Month(), f.now.Day()+1, hour, minute, 0, 0, time.UTC)
}

func (f *fixture) room(price float64) *model.Room {
	f.t.Helper()
	room, err := f.svc.Rooms.CreateRoom(f.ctx, CreateRoomInput{
		Name:         fmt.Sprintf("Room %02d", f.next()),
		PricePerHour: &price,
		Description:  "test room",
	})
	require.NoError(f.t, err)
	return room
}

func (f *fixture) reservation(startHour, endHour int) *model.Reservation {
	f.t.Helper()
	r, err := f.svc.Reservations.CreateReservation(f.ctx, f.tomorrow(startHour, 0), f.tomorrow(endHour, 0))
	require.NoError(f.t, err)
	return r
}

// bookedReservation is a paid reservation assigned to room.
func (f *fixture) bookedReservation(room *model.Room, startHour, endHour int) *model.Reservation {
	f.t.Helper()
	r := f.reservation(startHour, endHour)
	_, err := f.svc.Payments.CreatePayment(f.ctx, r.ID)
	require.NoError(f.t, err)
	r, err = f.svc.Reservations.AddReservationRoom(f.ctx, r.ID, room.ID)
	require.NoError(f.t, err)
	return r
}

func (f *fixture) user() *model.User {
	f.t.Helper()
	n := f.next()
	u, err := f.svc.Users.CreateUser(f.ctx, ProfileInput{
		Username: fmt.Sprintf("user%d", n),
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: "secret",
	})
	require.NoError(f.t, err)
	return u
}

func (f *fixture) admin() *model.Admin {
	f.t.Helper()
	n := f.next()
	a, err := f.svc.Admins.CreateAdmin(f.ctx, ProfileInput{
		Username: fmt.Sprintf("admin%d", n),
		Email:    fmt.Sprintf("admin%d@example.com", n),
		Password: "secret",
	})
	require.NoError(f.t, err)
	return a
}

func (f *fixture) reloadRoom(id int64) *model.Room {
	f.t.Helper()
	room, err := f.svc.Rooms.Room(f.ctx, id)
	require.NoError(f.t, err)
	return room
}

func assertBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	appErr, ok := apperr.As(err)
	require.True(t, ok, "expected an apperr, got %v", err)
	assert.Equal(t, apperr.KindBadRequest, appErr.Kind)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	assert.True(t, apperr.IsNotFound(err), "expected not found, got %v", err)
}

func ptr[T any](v T) *T {
	return &v
}
