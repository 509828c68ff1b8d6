package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDCtxKey   = "user_id"
	usernameCtxKey = "username"
)

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		abort(c, newUnauthorizedError("access denied, no token provided"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("access denied, no token provided"))
		return
	}

	claims, err := h.auth.VerifyToken(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to verify token")
		abort(c, newAPIError(http.StatusForbidden, "invalid token"))
		return
	}

	c.Set(userIDCtxKey, claims.UserID)
	c.Set(usernameCtxKey, claims.Username)
	c.Next()
}

// contextUserID returns the authenticated user id set by the middleware.
func contextUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return "", false
	}
	userID, _ := value.(string)
	return userID, userID != ""
}
