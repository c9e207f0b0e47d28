package middleware

import (
	"github.com/gin-gonic/gin"
	domainerrors "waitlist.backend/internal/domain/errors"
	"waitlist.backend/internal/interfaces/http/response"
	"waitlist.backend/pkg/crypto"
	"waitlist.backend/pkg/logger"
)

const WebhookSecretHeader = "X-Webhook-Secret"

var checkSecret = crypto.CheckSecret

// WebhookSecretMiddleware admits requests whose X-Webhook-Secret matches the
// bcrypt hash. An empty hash disables the route entirely.
func WebhookSecretMiddleware(secretHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretHash == "" {
			response.Error(c, domainerrors.NotFound("Not found"))
			c.Abort()
			return
		}

		if !checkSecret(c.GetHeader(WebhookSecretHeader), secretHash) {
			logger.Warn(c.Request.Context(), "Rejected webhook with invalid secret")
			response.Error(c, domainerrors.Unauthorized("Invalid webhook secret"))
			c.Abort()
			return
		}

		c.Next()
	}
}
