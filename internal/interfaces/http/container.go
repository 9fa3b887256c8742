package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"issueflow/internal/application/access"
	notificationApp "issueflow/internal/application/notification"
	notificationUsecases "issueflow/internal/application/notification/usecases"
	userApp "issueflow/internal/application/user"
	"issueflow/internal/infrastructure/auth"
	"issueflow/internal/infrastructure/config"
	"issueflow/internal/infrastructure/permission"
	"issueflow/internal/infrastructure/ratelimit"
	"issueflow/internal/infrastructure/scheduler"
	"issueflow/internal/interfaces/http/middleware"
	"issueflow/internal/shared/db"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

// Container holds the process-wide handles, repositories, use cases and
// handlers. Everything is built once in NewContainer and shared by all
// requests.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	// Shared services
	jwtSvc      *auth.JWTService
	hasher      *auth.BcryptPasswordHasher
	enforcer    *permission.Enforcer
	policy      *access.Policy
	txManager   *db.TransactionManager
	markup      markup.Service
	limiter     ratelimit.RateLimiter
	unreadCache notificationUsecases.UnreadCountCache
	mailer      notificationUsecases.Mailer
	dispatcher  *notificationUsecases.Dispatcher

	// Application services backing the root handlers
	userService         *userApp.ServiceDDD
	notificationService *notificationApp.ServiceDDD

	// Background jobs
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires every component. It fails only when a required
// dependency (the permission enforcer or the scheduler) cannot be built.
func NewContainer(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gormDB,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, repositories, shared services
	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	// Section 2: Notifications - cache, mailer, dispatcher
	c.initNotifications()

	// Section 3: Use cases and application services
	c.initUseCases()

	// Section 4: Handlers and middlewares
	c.initHandlers()

	// Section 5: Background jobs
	if err := c.initScheduler(); err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return c, nil
}
