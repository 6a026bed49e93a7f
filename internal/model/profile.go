package model

// Role is the authorization level of an account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Profile holds the account fields shared by users and admins.
type Profile struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     Role   `gorm:"size:16;not null" json:"role"`
}

// User is a customer account. It may own payments and hold reservations.
type User struct {
	Profile

	// Associations
	Payments     []Payment     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reservations []Reservation `gorm:"many2many:user_has_reservation;" json:"-"`
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "user_profiles"
}

// Admin is an administrator account. It may control rooms and hold reservations.
type Admin struct {
	Profile

	// Associations
	Rooms        []Room        `gorm:"many2many:admin_control_room;" json:"-"`
	Reservations []Reservation `gorm:"many2many:admin_has_reservation;" json:"-"`
}

// TableName overrides the default table name.
func (Admin) TableName() string {
	return "admin_profiles"
}
