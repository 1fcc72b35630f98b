package domain

import "time"

// Role is a permission tier
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// User Model
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username           string    `gorm:"size:64;uniqueIndex;not null" json:"username"` // Unique username
	PasswordHash       string    `gorm:"size:255;not null" json:"-"`                   // bcrypt hash, never the raw secret
	Role               Role      `gorm:"size:16;not null" json:"role"`                 // admin or operator
	MustChangePassword bool      `gorm:"not null;default:false" json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Actor returns the session identity of u
func (u User) Actor() Actor {
	return Actor{UserID: u.ID, Username: u.Username, Role: u.Role}
}
