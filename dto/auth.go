package dto

import (
	"time"

	"github.com/anprojects-core/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID   string   `json:"userId"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Projects []string `json:"projects,omitempty"`
	jwt.RegisteredClaims
}

// LoginRequest represents login credentials. Presence is checked by the
// handler so the error body stays under our control.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"full_name"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
}

// UpdatePasswordRequest sets a new password for a user
type UpdatePasswordRequest struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}

// UserResponse is the profile returned by login and register
type UserResponse struct {
	ID               string      `json:"id"`
	Email            string      `json:"email"`
	FullName         string      `json:"full_name"`
	Phone            *string     `json:"phone,omitempty"`
	Role             models.Role `json:"role"`
	IsActive         bool        `json:"is_active"`
	LastLogin        *time.Time  `json:"last_login,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	AssignedProjects []string    `json:"assignedProjects"`
}

// AuthResponse represents the response after authentication. Token is only
// issued when the server has a signing secret.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
}

// NewUserResponse maps a stored profile to its public shape
func NewUserResponse(user *models.UserProfile, assigned []string) UserResponse {
	if assigned == nil {
		assigned = []string{}
	}
	phone := user.Phone
	if phone != nil && *phone == "" {
		phone = nil
	}
	return UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		Phone:            phone,
		Role:             user.Role,
		IsActive:         user.IsActive,
		LastLogin:        user.LastLogin,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
		AssignedProjects: assigned,
	}
}
