package webhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plinian/pipeline/pkg/sdk"
	"github.com/plinian/pipeline/pkg/utils"
)

// signatureMiddleware verifies the X-Webhook-Signature header when a
// secret is configured. Unsigned requests pass through because CRM
// automations cannot sign their payloads.
func signatureMiddleware(cfg *utils.Config) gin.HandlerFunc {
	secret := cfg.Get("WEBHOOK_SECRET")

	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		signature := c.GetHeader("X-Webhook-Signature")
		if signature == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not read request body", err.Error()).AsGinResponse())
			return
		}
		// Restore the body for the handler
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(signature), []byte(expected)) {
			c.AbortWithStatusJSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid signature", nil).AsGinResponse())
			return
		}

		c.Next()
	}
}
