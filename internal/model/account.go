package model

import "time"

// Role determines which portal surface an account may use.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleRegistrar  Role = "registrar"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleRegistrar:
		return true
	}
	return false
}

// Account is a login credential. Student and instructor accounts use the
// profile email as username; profiles themselves live in their own tables.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=254"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// ChangePasswordRequest is the payload for rotating a password.
type ChangePasswordRequest struct {
	Current string `json:"current" binding:"required,min=6,max=128"`
	New     string `json:"new" binding:"required,min=6,max=128"`
}
