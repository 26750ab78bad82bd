package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP prefers proxy headers so limits and logs refer to the end
// client rather than the load balancer.
func getClientIP(c *gin.Context) string {
	// X-Forwarded-For is a comma-separated chain; the first entry is the client.
	for _, ip := range strings.Split(c.GetHeader("X-Forwarded-For"), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
