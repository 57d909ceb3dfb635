package middleware

import (
	"context"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const clientIPKey = "client_ip"

type clientIPCtxKey struct{}

// ClientIP extracts the client address and injects it into both the gin
// context and the request context.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ExtractClientIP(c)

		c.Set(clientIPKey, ip)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPCtxKey{}, ip))

		c.Next()
	}
}

// ClientIPFromContext returns "" when the middleware did not run
func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPCtxKey{}).(string); ok {
		return ip
	}
	return ""
}

// ExtractClientIP prefers X-Forwarded-For (first hop), then X-Real-IP,
// then the connection address.
func ExtractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); isValidIP(ip) {
			return ip
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); isValidIP(xri) {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		ip = c.Request.RemoteAddr
	}
	if isValidIP(ip) {
		return ip
	}
	return "127.0.0.1"
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}
