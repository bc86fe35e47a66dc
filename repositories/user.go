package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anprojects-core/database"
	"github.com/anprojects-core/models"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when no profile matches the lookup
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles user_profiles and project_assignments in Postgres
type UserRepository struct {
	provider *database.Provider
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(provider *database.Provider) *UserRepository {
	return &UserRepository{provider: provider}
}

func (r *UserRepository) db(ctx context.Context) (*gorm.DB, error) {
	conn, err := r.provider.Get()
	if err != nil {
		return nil, err
	}
	return conn.DB.WithContext(ctx), nil
}

// FindByEmail retrieves a profile by exact email match
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var user models.UserProfile
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// FindByID retrieves a profile by id
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	var user models.UserProfile
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// TouchLastLogin records a successful login
func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	err = db.Model(&models.UserProfile{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// AssignedProjectIDs lists the projects a user is assigned to
func (r *UserRepository) AssignedProjectIDs(ctx context.Context, userID string) ([]string, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	err = db.Model(&models.ProjectAssignment{}).Where("user_id = ?", userID).Pluck("project_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project assignments: %w", err)
	}
	return ids, nil
}

// Create inserts a profile; id and timestamps are filled in on success.
// The driver error is returned as is so callers can spot unique violations.
func (r *UserRepository) Create(ctx context.Context, user *models.UserProfile) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	return db.Create(user).Error
}

// UpdatePassword replaces the stored hash and bumps updated_at.
// An unknown id updates nothing and is not an error.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	err = db.Model(&models.UserProfile{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Assign links a user to a project
func (r *UserRepository) Assign(ctx context.Context, userID, projectID string) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	assignment := models.ProjectAssignment{UserID: userID, ProjectID: projectID}
	if err := db.Create(&assignment).Error; err != nil {
		return fmt.Errorf("failed to assign project: %w", err)
	}
	return nil
}
