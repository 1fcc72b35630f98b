package api

import (
	"net/http" // HTTP status codes

	"bank_system/internal/domain"     // Importing domain models
	"bank_system/internal/middleware" // Actor lookup
	"bank_system/internal/session"    // Session manager

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token              string      `json:"token"` // JWT token
	Username           string      `json:"username"`
	Role               domain.Role `json:"role"`
	MustChangePassword bool        `json:"must_change_password"` // Only POST /user/password is open until rotated
}

// RegisterRequest creates a user
type RegisterRequest struct {
	Username string      `json:"username" binding:"required"` // Username must be provided
	Password string      `json:"password" binding:"required"` // Password must be provided
	Role     domain.Role `json:"role"`                        // Defaults to operator
}

// ChangePasswordRequest rotates the caller's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		actor, token, err := sessions.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		// The token alone does not say whether rotation is pending
		_, mustChange, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, AuthResponse{
			Token:              token,
			Username:           actor.Username,
			Role:               actor.Role,
			MustChangePassword: mustChange,
		})
	}
}

// ChangePasswordHandler rotates the password of the authenticated user
func ChangePasswordHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		if err := sessions.ChangePassword(c.Request.Context(), middleware.ActorFrom(c), req.OldPassword, req.NewPassword); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
	}
}

// RegisterHandler adds a user. Admin only.
func RegisterHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		if req.Role == "" {
			req.Role = domain.RoleOperator
		}
		user, err := sessions.Register(c.Request.Context(), middleware.ActorFrom(c), req.Username, req.Password, req.Role)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}
