package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todocore/internal/services"
)

const identityCtxKey = "identity"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		abort(c, newUnauthorizedError("missing token"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	identity, err := h.auth.ParseToken(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse token")
		abort(c, newUnauthorizedError("invalid or expired token"))
		return
	}

	c.Set(identityCtxKey, *identity)
	c.Next()
}

func identityFromContext(c *gin.Context) (services.Identity, bool) {
	value, exists := c.Get(identityCtxKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := value.(services.Identity)
	return identity, ok
}

// mustIdentity aborts with 401 when the middleware did not run; todo
// and profile routes are never registered without it.
func (h *handlerImpl) mustIdentity(c *gin.Context) (services.Identity, bool) {
	identity, ok := identityFromContext(c)
	if !ok {
		h.logger.Error().Msg("no identity found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return services.Identity{}, false
	}
	return identity, true
}
