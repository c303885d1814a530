package user

import (
	"time"

	"propertypro-backend/internal/shared/authz"
)

// User là domain entity - ánh xạ 1:1 với bảng users trong DB
type User struct {
	// Identity
	ID    int64  `db:"id" json:"id"`
	Email string `db:"email" json:"email"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Profile
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
	Address     string `db:"address" json:"address"`

	// Authorization: chỉ có user / admin
	IsAdmin bool `db:"is_admin" json:"is_admin"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Role map is_admin sang role dùng trong token và policy
func (u *User) Role() authz.Role {
	if u.IsAdmin {
		return authz.RoleAdmin
	}
	return authz.RoleUser
}

// ToDTO removes sensitive data before sending to client
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
	}
}
