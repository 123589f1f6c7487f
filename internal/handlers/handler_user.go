package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

var profileErrors = errorMessages{
	NotFound: "User not found",
	Fallback: "Failed to process profile request",
}

var passwordErrors = errorMessages{
	NotFound:     "User not found",
	Unauthorized: "Current password is incorrect",
	Fallback:     "Failed to change password",
}

// userHandler handles HTTP requests related to the logged-in user's profile.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// RegisterUserRoutes registers the profile routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	rg.GET("/user/profile", h.getProfile)
	rg.PUT("/user/profile", h.updateProfile)
	rg.PUT("/user/password", h.changePassword)
}

// getProfile godoc
// @Summary Get current user profile
// @Tags users
// @Produce  json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /user/profile [get]
func (h *userHandler) getProfile(c *gin.Context) {
	userID, ok := ledgerID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, profileErrors)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Success: true, User: dto.ToUserResponse(user)})
}

// updateProfile godoc
// @Summary Update current user profile
// @Description Updates any of full name, business name, phone, address, tax id and currency
// @Tags users
// @Accept  json
// @Produce  json
// @Param   profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "success, message and the updated user"
// @Failure 400 {object} dto.ErrorResponse "No valid fields to update"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /user/profile [put]
func (h *userHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := ledgerID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	upd := req.ToProfileUpdate()
	if upd.IsEmpty() {
		logger.Warn("Profile update without fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, upd)
	if err != nil {
		respondWithError(c, err, profileErrors)
		return
	}
	logger.Info("Profile updated", slog.String("user_id", userID))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    dto.ToUserResponse(user),
	})
}

// changePassword godoc
// @Summary Change current user password
// @Tags users
// @Accept  json
// @Produce  json
// @Param   password body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "New password too weak"
// @Failure 401 {object} dto.ErrorResponse "Current password is incorrect"
// @Security BearerAuth
// @Router /user/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	userID, ok := ledgerID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithError(c, err, passwordErrors)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Password changed", slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password changed successfully"})
}
