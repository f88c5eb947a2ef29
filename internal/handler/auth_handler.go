package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/middleware"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// AuthHandler handles user account endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "email, password and name are required")
		return
	}

	user, token, err := h.auth.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 201, "Account created", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "email and password are required")
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Logged in", gin.H{
		"user":  user,
		"token": token,
	})
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.GetUser(middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Account retrieved", user)
}
