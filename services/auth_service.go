package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/models"
	"github.com/anprojects-core/repositories"
	"github.com/anprojects-core/utils"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrEmailExists        = errors.New("email already exists")
	ErrTokensDisabled     = errors.New("token signing is not configured")
)

// UserStore is the persistence the auth flows need
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	AssignedProjectIDs(ctx context.Context, userID string) ([]string, error)
	Create(ctx context.Context, user *models.UserProfile) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// AuthService verifies credentials and issues tokens
type AuthService struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates an auth service. With an empty secret logins still
// work but no token is issued.
func NewAuthService(users UserStore, secret string) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
		now:      time.Now,
	}
}

// TokensEnabled reports whether the service signs tokens
func (s *AuthService) TokensEnabled() bool {
	return len(s.secret) > 0
}

// Login authenticates a user. The password is checked before the active
// flag, so an inactive account is only revealed to someone who knows it.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	now := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	assigned, err := s.users.AssignedProjectIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	response := &dto.AuthResponse{User: dto.NewUserResponse(user, assigned)}
	if s.TokensEnabled() {
		token, expiresAt, err := s.GenerateToken(user, assigned)
		if err != nil {
			return nil, err
		}
		response.Token = token
		response.ExpiresAt = &expiresAt
	}
	return response, nil
}

// Register creates an active account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.UserProfile{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	}
	if req.Phone != "" {
		phone := req.Phone
		user.Phone = &phone
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	response := dto.NewUserResponse(user, nil)
	return &response, nil
}

// UpdatePassword replaces a user's password
func (s *AuthService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// GenerateToken generates a new JWT token for a user
func (s *AuthService) GenerateToken(user *models.UserProfile, projects []string) (string, time.Time, error) {
	if !s.TokensEnabled() {
		return "", time.Time{}, ErrTokensDisabled
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := dto.TokenClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
		Projects: projects,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func (s *AuthService) ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	if !s.TokensEnabled() {
		return nil, ErrTokensDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique") || strings.Contains(message, "duplicate")
}
