package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"issueflow/internal/application/user/usecases"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

type AuthHandler struct {
	service authService
	logger  logger.Interface
}

func NewAuthHandler(service authService, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

type RegisterRequest struct {
	Email       string `json:"email" example:"bob1@example.com" validate:"required" msg:"Email and password are required"`
	Password    string `json:"password" example:"secret1" validate:"required" msg:"Email and password are required"`
	DisplayName string `json:"display_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"bob1@example.com" validate:"required" msg:"Email and password are required"`
	Password string `json:"password" example:"secret1" validate:"required" msg:"Email and password are required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfileRequest documents the accepted fields; the body is decoded by
// key so a missing notification_preferences differs from a non-object one.
type UpdateProfileRequest struct {
	DisplayName             *string         `json:"display_name,omitempty"`
	NotificationPreferences map[string]bool `json:"notification_preferences,omitempty"`
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Description Create an account with email and password and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Credentials"
// @Success 201 {object} map[string]interface{} "User registered successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 409 {object} utils.ErrorBody "Email already registered"
// @Failure 429 {object} utils.ErrorBody "Too many registration attempts"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Email and password are required"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), usecases.RegisterWithPasswordCommand{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    result.User,
		"session": result.Session,
	})
}

// Login handles POST /auth/login
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Email and password are required"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), usecases.LoginWithPasswordCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.JSONResponse(c, gin.H{
		"message": "Login successful",
		"user":    result.User,
		"session": result.Session,
	})
}

// GetCurrentUser handles GET /auth/me
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorBody
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "user", result)
}

// Logout handles POST /auth/logout
// @Summary Sign out
// @Description Invalidate the session behind the bearer token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]interface{} "Logout successful"
// @Failure 401 {object} utils.ErrorBody
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, err := utils.CurrentUserID(c); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.Logout(c.Request.Context(), utils.CurrentSessionID(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "Logout successful")
}

// ChangePassword handles POST /auth/password
// @Summary Change password
// @Description Requires the current password. Other sessions are signed out.
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]interface{} "Password updated successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 503 {object} utils.ErrorBody "Password changes disabled"
// @Router /auth/password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Current password and new password are required"))
		return
	}

	err = h.service.ChangePassword(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          userID,
		SessionID:       utils.CurrentSessionID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "Password updated successfully")
}

// UpdateProfile handles POST /auth/profile
// @Summary Update display name and notification preferences
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{} "Profile updated successfully"
// @Failure 400 {object} utils.ErrorBody
// @Router /auth/profile [post]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Nothing to update. Send display_name and/or notification_preferences."))
		return
	}

	cmd := usecases.UpdateProfileCommand{UserID: userID}
	if raw, ok := body["display_name"]; ok {
		// Anything but a string clears the name.
		var name string
		_ = json.Unmarshal(raw, &name)
		cmd.DisplayName = &name
	}
	if raw, ok := body["notification_preferences"]; ok {
		var prefs any
		if err := json.Unmarshal(raw, &prefs); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("notification_preferences must be an object"))
			return
		}
		cmd.Preferences = prefs
		cmd.HasPreferences = true
	}

	result, err := h.service.UpdateProfile(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", "user", result)
}
