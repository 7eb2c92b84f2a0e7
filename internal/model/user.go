package model

import "time"

// User roles understood by the role middleware and the login redirect
// convention on the client side.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID                uint       `json:"id" gorm:"primarykey"`
	FullName          string     `json:"fullName"`
	Email             string     `json:"email" gorm:"unique;not null"`
	Password          string     `json:"-"`
	Role              string     `json:"role" gorm:"default:employee"`
	Status            string     `json:"status" gorm:"default:active"`
	LastLogin         *time.Time `json:"lastLogin"`
	PasswordChangedAt *time.Time `json:"passwordChangedAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register. New accounts always
// get the employee role; admins are provisioned by the seeder.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success body of POST /auth/login. ExpiresIn is in
// seconds.
type LoginResponse struct {
	Token     string `json:"token"`
	User      User   `json:"user"`
	ExpiresIn int    `json:"expiresIn"`
}
