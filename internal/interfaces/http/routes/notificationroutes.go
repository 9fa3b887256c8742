package routes

import (
	"github.com/gin-gonic/gin"

	"issueflow/internal/interfaces/http/handlers"
	"issueflow/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *handlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupNotificationRoutes(api gin.IRouter, config *NotificationRouteConfig) {
	notifications := api.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("", config.NotificationHandler.ListNotifications)
		notifications.GET("/unread-count", config.NotificationHandler.GetUnreadCount)
		notifications.POST("/read-all", config.NotificationHandler.MarkAllAsRead)
		notifications.POST("/:id/read", config.NotificationHandler.MarkAsRead)
	}
}
