package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"issueflow/internal/infrastructure/ratelimit"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

const msgTooManyRegistrations = "Too many registration attempts. Please try again later."

// RateLimiter throttles a route per client IP using a fixed window. Limiter
// errors let the request through.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	window  ratelimit.Window
	scope   string
	message string
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, window ratelimit.Window, scope, message string, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		window:  window,
		scope:   scope,
		message: message,
		logger:  log,
	}
}

// NewRegisterRateLimiter limits sign-ups per IP.
func NewRegisterRateLimiter(limiter ratelimit.RateLimiter, window ratelimit.Window, log logger.Interface) *RateLimiter {
	return NewRateLimiter(limiter, window, "register", msgTooManyRegistrations, log)
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter == nil || !rl.window.Enabled() {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:ip:%s", rl.scope, c.ClientIP())
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.window)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Infow("rate limit exceeded", "scope", rl.scope, "ip", c.ClientIP())
			utils.ErrorResponseWithError(c, errors.NewRateLimitError(rl.message))
			c.Abort()
			return
		}

		c.Next()
	}
}
