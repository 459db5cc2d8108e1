package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/glowhaven/glowbot/internal/twilio"
)

// Recover returns middleware that recovers from panics. The gateway still
// gets a well-formed TwiML reply so the user sees an error message
// instead of silence.
func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic recovered in handler",
					"panic", r,
					"stack", string(debug.Stack()),
				)
				if !c.Writer.Written() {
					c.Header("Content-Type", "application/xml")
					c.String(http.StatusOK, twilio.MessagingResponse(
						"⚠️ A serious internal error occurred. Please wait a moment and try sending 'menu' again."))
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
