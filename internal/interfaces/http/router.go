package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"issueflow/internal/infrastructure/config"
	"issueflow/internal/interfaces/http/middleware"
	"issueflow/internal/interfaces/http/routes"
	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"

	_ "issueflow/docs"
)

// Router owns the gin engine and the container that backs its handlers.
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestLogger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", func(c *gin.Context) {
		utils.MessageResponse(c, "Server is running")
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})
	routes.SetupProjectRoutes(api, &routes.ProjectRouteConfig{
		ProjectHandler: r.hdlrs.projectHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:  r.hdlrs.ticketHandler,
		CommentHandler: r.hdlrs.commentHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler: r.hdlrs.notificationHandler,
		AuthMiddleware:      r.authMiddleware,
	})

	r.engine.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, constants.ErrMsgRouteNotFound)
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// StartBackgroundJobs starts the maintenance scheduler.
func (r *Router) StartBackgroundJobs() {
	if r.schedulerManager != nil {
		r.schedulerManager.Start()
	}
}

// Shutdown stops background jobs and releases the Redis connection. In-flight
// notification goroutines finish on their own timeouts.
func (r *Router) Shutdown() {
	if r.schedulerManager != nil {
		if err := r.schedulerManager.Stop(); err != nil {
			r.log.Errorw("failed to stop scheduler", "error", err)
		}
	}

	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.log.Errorw("failed to close Redis connection", "error", err)
		}
	}
}
