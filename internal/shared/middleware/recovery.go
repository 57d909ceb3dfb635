package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/errs"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(requestIDKey)).
					Interface("error", err).
					Msg("Panic recovered")

				AbortWithGraphQLError(c, http.StatusInternalServerError, "internal server error", errs.CodeInternal)
			}
		}()

		c.Next()
	}
}

// AbortWithGraphQLError writes a GraphQL-shaped error body, so clients
// parse transport failures the same way as resolver errors.
func AbortWithGraphQLError(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, gin.H{
		"errors": []gin.H{{
			"message":    message,
			"extensions": gin.H{"code": code},
		}},
	})
}
