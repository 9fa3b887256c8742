package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"issueflow/internal/application/access"
	notificationUsecases "issueflow/internal/application/notification/usecases"
	"issueflow/internal/infrastructure/auth"
	"issueflow/internal/infrastructure/cache"
	"issueflow/internal/infrastructure/config"
	"issueflow/internal/infrastructure/email"
	"issueflow/internal/infrastructure/permission"
	"issueflow/internal/infrastructure/ratelimit"
	"issueflow/internal/infrastructure/scheduler"
	"issueflow/internal/interfaces/http/middleware"
	"issueflow/internal/shared/db"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

const redisPingTimeout = 5 * time.Second

// ============================================================
// Section 1: Infrastructure - Redis, repositories, shared services
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	// Redis is optional: without it the rate limiter runs in memory and the
	// unread count is read from the database every time.
	c.redis = initRedis(cfg, log)

	c.repos = newRepositories(c.db, log)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.enforcer = enforcer
	c.policy = access.NewPolicy(c.repos.projectRepo, c.repos.memberRepo, enforcer, log)

	c.txManager = db.NewTransactionManager(c.db)
	c.markup = markup.NewService()

	if c.redis != nil {
		c.limiter = ratelimit.NewRedisRateLimiter(c.redis)
	} else {
		c.limiter = ratelimit.NewMemoryRateLimiter()
	}

	return nil
}

// initRedis connects to Redis when enabled. A failed ping is logged and
// Redis-backed features fall back to their local implementations.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Infow("Redis disabled, using in-process fallbacks")
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, using in-process fallbacks", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient
}

// ============================================================
// Section 2: Notifications
// ============================================================

func (c *Container) initNotifications() {
	cfg := c.cfg
	log := c.log

	if c.redis != nil {
		c.unreadCache = cache.NewRedisUnreadCountCache(c.redis, log)
	}

	if cfg.Email.Enabled() {
		c.mailer = email.NewSMTPEmailService(cfg.Email)
		log.Infow("email notifications enabled", "smtp_host", cfg.Email.SMTPHost)
	} else {
		log.Infow("email notifications disabled, smtp_host or from_address not configured")
	}

	c.dispatcher = notificationUsecases.NewDispatcher(
		c.repos.notificationRepo,
		c.repos.userRepo,
		c.unreadCache,
		c.mailer,
		log,
	)
}

// ============================================================
// Section 4: Middlewares
// ============================================================

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.sessionRepo, c.log)
	c.rateLimiter = middleware.NewRegisterRateLimiter(c.limiter, ratelimit.Window{
		Limit:  c.cfg.RateLimit.RegisterLimit,
		Window: c.cfg.RateLimit.RegisterWindow,
	}, c.log)
}

// ============================================================
// Section 5: Background jobs
// ============================================================

func (c *Container) initScheduler() error {
	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return err
	}
	if err := manager.RegisterSessionCleanupJob(c.ucs.cleanupSessionsUC); err != nil {
		return fmt.Errorf("failed to register session cleanup job: %w", err)
	}
	if c.mailer != nil {
		if err := manager.RegisterDigestJob(c.ucs.sendDigestUC); err != nil {
			return fmt.Errorf("failed to register digest job: %w", err)
		}
	}
	c.schedulerManager = manager
	return nil
}
