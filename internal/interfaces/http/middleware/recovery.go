package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/sandpay-io/sandpay/internal/shared/logger"
	"github.com/sandpay-io/sandpay/internal/shared/utils"
)

// Recovery converts panics into 500 responses with a logged stack trace.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorw("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"panic", recovered,
			"stack", string(debug.Stack()),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		c.Abort()
	})
}
