package handlers

import (
	"github.com/gin-gonic/gin"

	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

type NotificationHandler struct {
	service notificationService
	logger  logger.Interface
}

func NewNotificationHandler(service notificationService, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger,
	}
}

// ListNotifications godoc
// @Summary List notifications
// @Description Most recent notifications of the caller, newest first
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size (default 50, max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorBody "Unauthorized"
// @Failure 500 {object} utils.ErrorBody "Internal server error"
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	limit := utils.QueryInt(c, "limit", constants.DefaultNotificationLimit)
	result, err := h.service.ListNotifications(c.Request.Context(), userID, limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.JSONResponse(c, gin.H{
		"notifications": result.Notifications,
		"unread_count":  result.UnreadCount,
	})
}

// GetUnreadCount godoc
// @Summary Unread notification count
// @Security Bearer
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorBody "Unauthorized"
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.JSONResponse(c, gin.H{"unread_count": result.UnreadCount})
}

// MarkAsRead godoc
// @Summary Mark one notification read
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]interface{} "Marked as read"
// @Failure 401 {object} utils.ErrorBody "Unauthorized"
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	notificationID, err := utils.RequireParam(c, "id", "Invalid notification id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.MarkNotificationAsRead(c.Request.Context(), notificationID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "Marked as read")
}

// MarkAllAsRead godoc
// @Summary Mark every notification read
// @Security Bearer
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{} "All marked as read"
// @Failure 401 {object} utils.ErrorBody "Unauthorized"
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.MarkAllNotificationsAsRead(c.Request.Context(), userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "All marked as read")
}
