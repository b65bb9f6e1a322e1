// File: internal/dtos/user.go
package dtos

import (
	"time"

	"github.com/iitigpt/go-campusgpt/internal/domain"
)

// UserResponseDTO defines what fields to expose in user API responses.
// The password hash never leaves the service layer.
type UserResponseDTO struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// RegisterRequestDTO represents the expected payload to create an account.
type RegisterRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequestDTO represents the login payload.
type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponseDTO represents the register/login response.
type AuthResponseDTO struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    UserResponseDTO `json:"user"`
}

// FromDomain maps a domain.User to UserResponseDTO for public API responses.
func FromDomain(user domain.User) UserResponseDTO {
	return UserResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
