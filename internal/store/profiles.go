package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"room-meeting-backend/internal/model"
)

// UserStore persists user profiles and their reservation holdings.
type UserStore interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListUsersByUsername(ctx context.Context, desc bool) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	SaveUser(ctx context.Context, u *model.User) error
	UserHoldsReservation(ctx context.Context, userID, reservationID int64) (bool, error)
	AddUserReservation(ctx context.Context, userID, reservationID int64) error
	ClearUserReservations(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, id int64) error
}

// AdminStore persists admin profiles, their controlled rooms and reservation holdings.
type AdminStore interface {
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	ListAdminsByUsername(ctx context.Context, desc bool) ([]model.Admin, error)
	GetAdmin(ctx context.Context, id int64) (*model.Admin, error)
	FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	CreateAdmin(ctx context.Context, a *model.Admin) error
	SaveAdmin(ctx context.Context, a *model.Admin) error
	AdminHoldsReservation(ctx context.Context, adminID, reservationID int64) (bool, error)
	AddAdminReservation(ctx context.Context, adminID, reservationID int64) error
	ClearAdminReservations(ctx context.Context, adminID int64) error
	AddAdminRoom(ctx context.Context, adminID, roomID int64) error
	DeleteAdmin(ctx context.Context, id int64) error
}

func byUsername(desc bool) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: "username"}, Desc: desc}
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.conn(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *gormStore) ListUsersByUsername(ctx context.Context, desc bool) ([]model.User, error) {
	var users []model.User
	if err := s.conn(ctx).Order(byUsername(desc)).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users by username: %w", err)
	}
	return users, nil
}

func (s *gormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := first(s.conn(ctx).Preload("Reservations"), &u, "user", id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := first(s.conn(ctx).Where("username = ?", username), &u, "user"); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := first(s.conn(ctx).Where("email = ?", email), &u, "user"); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", u.Username, err)
	}
	return nil
}

func (s *gormStore) SaveUser(ctx context.Context, u *model.User) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(u).Error; err != nil {
		return fmt.Errorf("failed to save user %d: %w", u.ID, err)
	}
	return nil
}

func (s *gormStore) UserHoldsReservation(ctx context.Context, userID, reservationID int64) (bool, error) {
	return holds(s.conn(ctx), "user_has_reservation", "user_id", userID, reservationID)
}

func (s *gormStore) AddUserReservation(ctx context.Context, userID, reservationID int64) error {
	return link(s.conn(ctx), "user_has_reservation", map[string]any{"user_id": userID, "reservation_id": reservationID})
}

func (s *gormStore) ClearUserReservations(ctx context.Context, userID int64) error {
	if err := s.conn(ctx).Exec("DELETE FROM user_has_reservation WHERE user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to clear reservations of user %d: %w", userID, err)
	}
	return nil
}

// DeleteUser removes the user, its payments and its reservation holdings.
// Reservations billed by those payments stay, unlinked.
func (s *gormStore) DeleteUser(ctx context.Context, id int64) error {
	db := s.conn(ctx)
	steps := []struct {
		what string
		sql  string
	}{
		{"payment links", "UPDATE room_reservations SET payment_id = NULL WHERE payment_id IN (SELECT id FROM payments WHERE user_id = ?)"},
		{"payments", "DELETE FROM payments WHERE user_id = ?"},
		{"holdings", "DELETE FROM user_has_reservation WHERE user_id = ?"},
	}
	for _, step := range steps {
		if err := db.Exec(step.sql, id).Error; err != nil {
			return fmt.Errorf("failed to delete %s of user %d: %w", step.what, id, err)
		}
	}
	if err := db.Delete(&model.User{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

func (s *gormStore) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.conn(ctx).Order("id").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

func (s *gormStore) ListAdminsByUsername(ctx context.Context, desc bool) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.conn(ctx).Order(byUsername(desc)).Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins by username: %w", err)
	}
	return admins, nil
}

func (s *gormStore) GetAdmin(ctx context.Context, id int64) (*model.Admin, error) {
	var a model.Admin
	if err := first(s.conn(ctx).Preload("Rooms").Preload("Reservations"), &a, "admin", id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	if err := first(s.conn(ctx).Where("username = ?", username), &a, "admin"); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) FindAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	if err := first(s.conn(ctx).Where("email = ?", email), &a, "admin"); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) CreateAdmin(ctx context.Context, a *model.Admin) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create admin %q: %w", a.Username, err)
	}
	return nil
}

func (s *gormStore) SaveAdmin(ctx context.Context, a *model.Admin) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(a).Error; err != nil {
		return fmt.Errorf("failed to save admin %d: %w", a.ID, err)
	}
	return nil
}

func (s *gormStore) AdminHoldsReservation(ctx context.Context, adminID, reservationID int64) (bool, error) {
	return holds(s.conn(ctx), "admin_has_reservation", "admin_id", adminID, reservationID)
}

func (s *gormStore) AddAdminReservation(ctx context.Context, adminID, reservationID int64) error {
	return link(s.conn(ctx), "admin_has_reservation", map[string]any{"admin_id": adminID, "reservation_id": reservationID})
}

func (s *gormStore) ClearAdminReservations(ctx context.Context, adminID int64) error {
	if err := s.conn(ctx).Exec("DELETE FROM admin_has_reservation WHERE admin_id = ?", adminID).Error; err != nil {
		return fmt.Errorf("failed to clear reservations of admin %d: %w", adminID, err)
	}
	return nil
}

// AddAdminRoom adds the room to the admin's controlled set. Adding a room
// twice is a no-op.
func (s *gormStore) AddAdminRoom(ctx context.Context, adminID, roomID int64) error {
	err := s.conn(ctx).
		Table("admin_control_room").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]any{"admin_id": adminID, "room_id": roomID}).Error
	if err != nil {
		return fmt.Errorf("failed to add room %d to admin %d: %w", roomID, adminID, err)
	}
	return nil
}

// DeleteAdmin removes the admin and its control and holding rows.
func (s *gormStore) DeleteAdmin(ctx context.Context, id int64) error {
	db := s.conn(ctx)
	for _, table := range []string{"admin_control_room", "admin_has_reservation"} {
		if err := db.Exec("DELETE FROM "+table+" WHERE admin_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete %s rows of admin %d: %w", table, id, err)
		}
	}
	if err := db.Delete(&model.Admin{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete admin %d: %w", id, err)
	}
	return nil
}

func holds(db *gorm.DB, table, ownerColumn string, ownerID, reservationID int64) (bool, error) {
	return exists(
		db.Table(table).Where(ownerColumn+" = ? AND reservation_id = ?", ownerID, reservationID),
		table,
	)
}

func link(db *gorm.DB, table string, row map[string]any) error {
	if err := db.Table(table).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}
