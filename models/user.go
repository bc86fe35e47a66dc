package models

import (
	"time"
)

// Role represents user role types
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleEntrepreneur   Role = "entrepreneur"
	RoleAccountant     Role = "accountant"
)

// UserProfile is a login account stored in the hosted database
type UserProfile struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"` // never serialized
	FullName     string     `json:"full_name" gorm:"not null"`
	Phone        *string    `json:"phone,omitempty" gorm:"default:null"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLogin    *time.Time `json:"last_login,omitempty" gorm:"default:null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName sets the table name for UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}

// ProjectAssignment links a user to a project they may access
type ProjectAssignment struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;index"`
	ProjectID  string    `json:"project_id" gorm:"type:text;not null;index"`
	AssignedAt time.Time `json:"assigned_at" gorm:"autoCreateTime"`

	// Relations
	User UserProfile `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for ProjectAssignment model
func (ProjectAssignment) TableName() string {
	return "project_assignments"
}
