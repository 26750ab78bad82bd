package handlers

import (
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger, tagged with the request id
// when middleware.RequestLogger is installed.
func getLogger(c *gin.Context) *zap.Logger {
	return utils.ContextLogger(c)
}
