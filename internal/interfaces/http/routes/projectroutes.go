package routes

import (
	"github.com/gin-gonic/gin"

	projecthandlers "issueflow/internal/interfaces/http/handlers/project"
	"issueflow/internal/interfaces/http/middleware"
)

type ProjectRouteConfig struct {
	ProjectHandler *projecthandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupProjectRoutes registers the project lifecycle and membership routes.
// Creator-only checks happen in the use cases.
func SetupProjectRoutes(api gin.IRouter, config *ProjectRouteConfig) {
	projects := api.Group("/projects")
	projects.Use(config.AuthMiddleware.RequireAuth())
	{
		// Specific paths before /:id
		projects.POST("", config.ProjectHandler.CreateProject)
		projects.GET("", config.ProjectHandler.ListProjects)
		projects.GET("/deleted", config.ProjectHandler.ListDeletedProjects)

		projects.POST("/:id/restore", config.ProjectHandler.RestoreProject)
		projects.POST("/:id/permanent-delete", config.ProjectHandler.PurgeProject)
		projects.POST("/:id/invite", config.ProjectHandler.InviteMember)
		projects.GET("/:id/members", config.ProjectHandler.ListMembers)
		projects.POST("/:id/members", config.ProjectHandler.AddMember)
		projects.POST("/:id/star", config.ProjectHandler.ToggleStar)

		projects.GET("/:id", config.ProjectHandler.GetProject)
		projects.PUT("/:id", config.ProjectHandler.UpdateProject)
		projects.DELETE("/:id", config.ProjectHandler.TrashProject)
	}
}
