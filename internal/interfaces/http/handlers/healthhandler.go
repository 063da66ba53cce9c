package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandpay-io/sandpay/internal/shared/biztime"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": biztime.FormatRFC3339(biztime.NowUTC()),
	})
}
