package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/auth"
	"library-catalog/internal/shared/errs"
)

// CallerResolver turns an Authorization header into a Caller
type CallerResolver interface {
	ResolveCaller(ctx context.Context, header string) (auth.Caller, error)
}

// Authenticate attaches the caller to the request context before any
// resolver runs. A credential that fails verification rejects the whole
// request with 401.
func Authenticate(resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		caller, err := resolver.ResolveCaller(ctx, c.GetHeader("Authorization"))
		if err != nil {
			var authErr *errs.AuthenticationError
			if errors.As(err, &authErr) {
				AbortWithGraphQLError(c, http.StatusUnauthorized, authErr.Message, errs.CodeUnauthenticated)
				return
			}

			log.Error().
				Err(err).
				Str("request_id", c.GetString(requestIDKey)).
				Msg("failed to resolve caller")
			AbortWithGraphQLError(c, http.StatusInternalServerError, "internal server error", errs.CodeInternal)
			return
		}

		c.Request = c.Request.WithContext(auth.WithCaller(ctx, caller))
		c.Next()
	}
}
