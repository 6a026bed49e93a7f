package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-meeting-backend/internal/model"
)

func TestAdminService_CreateAdmin(t *testing.T) {
	f := newFixture(t)

	a, err := f.svc.Admins.CreateAdmin(f.ctx, ProfileInput{Username: "root", Email: "root@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, a.Role)

	// email is checked before username
	_, err = f.svc.Admins.CreateAdmin(f.ctx, ProfileInput{Username: "root", Email: "root@example.com", Password: "pw"})
	assertBadRequest(t, err, "Email root@example.com is already taken.")

	_, err = f.svc.Admins.CreateAdmin(f.ctx, ProfileInput{Username: "root", Email: "other@example.com", Password: "pw"})
	assertBadRequest(t, err, "Username root is already taken.")

	_, err = f.svc.Admins.CreateAdmin(f.ctx, ProfileInput{Username: "root2"})
	assertBadRequest(t, err, "")
}

func TestAdminService_UpdateAdmin(t *testing.T) {
	f := newFixture(t)
	a := f.admin()
	other := f.admin()

	_, err := f.svc.Admins.UpdateAdmin(f.ctx, 999, "x@example.com")
	assertNotFound(t, err)
	_, err = f.svc.Admins.UpdateAdmin(f.ctx, a.ID, "")
	assertBadRequest(t, err, "")
	_, err = f.svc.Admins.UpdateAdmin(f.ctx, a.ID, a.Email)
	assertBadRequest(t, err, "Email must differ from the current one.")
	_, err = f.svc.Admins.UpdateAdmin(f.ctx, a.ID, other.Email)
	assertBadRequest(t, err, "Email "+other.Email+" is already taken.")

	updated, err := f.svc.Admins.UpdateAdmin(f.ctx, a.ID, "fresh@example.com")
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", updated.Email)
	assert.Equal(t, a.Username, updated.Username)
}

func TestAdminService_Reservations(t *testing.T) {
	f := newFixture(t)
	a := f.admin()
	room := f.room(60)
	r := f.bookedReservation(room, 9, 10)

	_, err := f.svc.Admins.AddAdminReservation(f.ctx, a.ID, r.ID)
	require.NoError(t, err)
	_, err = f.svc.Admins.AddAdminReservation(f.ctx, a.ID, r.ID)
	assertBadRequest(t, err, "Admin already has a reservation in this room.")

	loaded, err := f.svc.Admins.Admin(f.ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Reservations, 1)

	require.NoError(t, f.svc.Admins.DeleteAdminReservation(f.ctx, a.ID, r.ID))
	assert.Zero(t, f.reloadRoom(room.ID).Occupancy)
	assertBadRequest(t, f.svc.Admins.DeleteAdminReservation(f.ctx, a.ID, r.ID), "")

	events := f.notifier.Events()
	require.Len(t, events, 2)
	assert.Equal(t, model.AccountAdmin, events[1].AccountKind)
}

func TestAdminService_CapacityFull(t *testing.T) {
	f := newFixture(t)
	room := f.room(60)
	r := f.bookedReservation(room, 9, 10)

	room = f.reloadRoom(room.ID)
	room.Occupancy = 5
	require.NoError(t, f.store.SaveRoom(f.ctx, room))

	_, err := f.svc.Admins.AddAdminReservation(f.ctx, f.admin().ID, r.ID)
	assertBadRequest(t, err, "Room capacity is full.")
}

func TestAdminService_ControlRoomAndDelete(t *testing.T) {
	f := newFixture(t)
	a := f.admin()
	room := f.room(60)

	assertNotFound(t, f.svc.Admins.AdminControlRoom(f.ctx, 999, room.ID))
	assertNotFound(t, f.svc.Admins.AdminControlRoom(f.ctx, a.ID, 999))
	require.NoError(t, f.svc.Admins.AdminControlRoom(f.ctx, a.ID, room.ID))
	require.NoError(t, f.svc.Admins.AdminControlRoom(f.ctx, a.ID, room.ID))

	loaded, err := f.svc.Admins.Admin(f.ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Rooms, 1)

	require.NoError(t, f.svc.Admins.DeleteAdmin(f.ctx, a.ID))
	assertNotFound(t, f.svc.Admins.DeleteAdmin(f.ctx, a.ID))

	// the room is no longer controlled and can go
	require.NoError(t, f.svc.Rooms.DeleteRoom(f.ctx, room.ID))
}

func TestAdminService_AdminsByUsername(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"zed", "amy"} {
		_, err := f.svc.Admins.CreateAdmin(f.ctx, ProfileInput{Username: name, Email: name + "@example.com", Password: "x"})
		require.NoError(t, err)
	}

	asc, err := f.svc.Admins.AdminsByUsername(f.ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "amy", asc[0].Username)

	all, err := f.svc.Admins.Admins(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "zed", all[0].Username)
}
