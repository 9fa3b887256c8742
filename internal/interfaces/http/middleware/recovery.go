package middleware

import (
	"fmt"
	"net"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"issueflow/internal/infrastructure/monitoring"
	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if checkBrokenConnection(recovered) {
			logger.Error("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"headers", maskedHeaders(c),
			"error", recovered,
			"stack", string(debug.Stack()))

		monitoring.CapturePanic(recovered, map[string]string{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		})

		utils.ErrorResponse(c, 500, constants.ErrMsgInternalServerError)
		c.Abort()
	})
}

// maskedHeaders dumps the request headers with credentials blanked out.
func maskedHeaders(c *gin.Context) []string {
	httpRequest, _ := httputil.DumpRequest(c.Request, false)
	headers := strings.Split(string(httpRequest), "\r\n")
	for idx, header := range headers {
		current := strings.Split(header, ":")
		if strings.EqualFold(current[0], constants.HeaderAuthorization) {
			headers[idx] = current[0] + ": *"
		}
	}
	return headers
}

// checkBrokenConnection checks if the error is a broken connection
func checkBrokenConnection(err interface{}) bool {
	var brokenConnections = []string{
		"connection reset by peer",
		"broken pipe",
		"connection refused",
	}

	if ne, ok := err.(*net.OpError); ok {
		if se, ok := ne.Err.(*os.SyscallError); ok {
			errStr := strings.ToLower(se.Error())
			for _, s := range brokenConnections {
				if strings.Contains(errStr, s) {
					return true
				}
			}
		}
	}
	return false
}

// ErrorHandler answers errors attached with c.Error when the handler did not
// write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			logger.Error("handler error occurred",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", err)

			if !c.Writer.Written() {
				monitoring.CaptureException(fmt.Errorf("%s %s: %w", c.Request.Method, c.FullPath(), err), nil, nil)
				utils.ErrorResponseWithError(c, err)
			}
		}
	}
}
