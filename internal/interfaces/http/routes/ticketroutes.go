package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "issueflow/internal/interfaces/http/handlers/ticket"
	"issueflow/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	CommentHandler *tickethandlers.CommentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTicketRoutes(api gin.IRouter, config *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.POST("", config.TicketHandler.CreateTicket)
		tickets.GET("", config.TicketHandler.ListTickets)
		// Must come before /:id
		tickets.GET("/stats", config.TicketHandler.GetTicketStats)

		tickets.GET("/:id", config.TicketHandler.GetTicket)
		tickets.PUT("/:id", config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id", config.TicketHandler.DeleteTicket)
	}

	comments := api.Group("/comments")
	comments.Use(config.AuthMiddleware.RequireAuth())
	{
		comments.POST("", config.CommentHandler.CreateComment)
		comments.GET("", config.CommentHandler.ListComments)

		comments.GET("/:id", config.CommentHandler.GetComment)
		comments.PUT("/:id", config.CommentHandler.UpdateComment)
		comments.DELETE("/:id", config.CommentHandler.DeleteComment)
	}
}
