package handlers

import (
	"net/http"

	"servify/services/user"
	"servify/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves registration, login and account moderation.
type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// Register creates a customer or provider account.
func (h *UserHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	record, err := h.Service.Register(input.Name, input.Email, input.Password, input.Role)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to register", err.Error())
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Login authenticates and returns a bearer token.
func (h *UserHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	record, token, err := h.Service.Authenticate(input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": record, "token": token})
}

// Me returns the authenticated account.
func (h *UserHandler) Me(c *gin.Context) {
	record, err := h.Service.GetByID(currentUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "User not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, record)
}

// Logout revokes the current token.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Service.RevokeToken(currentUserID(c)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to log out", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// SetUserActive is the admin moderation toggle on accounts.
func (h *UserHandler) SetUserActive(c *gin.Context) {
	var input struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.Service.SetActive(c.Param("id"), input.IsActive); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update user", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
