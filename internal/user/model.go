package user

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public is the shape returned to clients after login/register.
type Public struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

func (u *User) Public() Public {
	return Public{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, Avatar: u.Avatar}
}

// RegisterRequest payload.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" example:"an@example.com"`
	Password string `json:"password" example:"s3cret"`
	Name     string `json:"name" example:"Nguyen Van An"`
	Avatar   string `json:"avatar,omitempty"`
}

// LoginRequest payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" example:"an@example.com"`
	Password string `json:"password" example:"s3cret"`
}

// AuthResponse is the token plus the public user.
// swagger:model AuthResponse
type AuthResponse struct {
	Token string `json:"token"`
	User  Public `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
