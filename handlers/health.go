package handlers

import (
	"net/http"

	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and the configured backends.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Hi, I'm slotbook",
		"health":  utils.GetHealthStatus(),
	})
}
