package v1

import (
	"errors"
	"net/http"

	"github.com/anprojects-core/database"
	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/middleware"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController serves login, registration and password changes
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterRoutes registers auth routes
func (ac *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", ac.Login)
		auth.POST("/register", ac.Register)
		auth.POST("/update-password", ac.UpdatePassword)

		// answered by EndpointHeaders
		auth.OPTIONS("/login", middleware.Preflight)
		auth.OPTIONS("/register", middleware.Preflight)
		auth.OPTIONS("/update-password", middleware.Preflight)
	}
}

// Login handles user authentication
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	_ = c.ShouldBindJSON(&req)
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response)
	case errors.Is(err, database.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database not configured"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrAccountInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account inactive"})
	default:
		zap.L().Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
	}
}

// Register handles user registration
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	_ = c.ShouldBindJSON(&req)
	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"user": user})
	case errors.Is(err, database.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database not configured"})
	case errors.Is(err, services.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
	default:
		zap.L().Error("registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
	}
}

// UpdatePassword sets a new password for the given user
func (ac *AuthController) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	_ = c.ShouldBindJSON(&req)
	if req.UserID == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	err := ac.authService.UpdatePassword(c.Request.Context(), req.UserID, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, database.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database not configured"})
	default:
		zap.L().Error("password update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password update failed"})
	}
}
