// Package server wires the webhook HTTP surface: routing, middleware,
// and the TwiML reply encoding around the conversation handler.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowhaven/glowbot/internal/config"
	"github.com/glowhaven/glowbot/internal/handler"
	"github.com/glowhaven/glowbot/internal/middleware"
	"github.com/glowhaven/glowbot/internal/twilio"
)

// NewRouter assembles the gin engine. limiter may be nil when rate
// limiting is disabled.
func NewRouter(h *handler.Handler, pool *pgxpool.Pool, limiter *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recover(), middleware.Logging())

	r.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "database unreachable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	webhook := r.Group("/")
	if limiter != nil {
		webhook.Use(limiter.Limit())
	}
	webhook.POST("/whatsapp", func(c *gin.Context) {
		in, err := twilio.ParseInbound(c.Request)
		if err != nil || in.Identity == "" {
			c.String(http.StatusBadRequest, "missing sender")
			return
		}
		segments := h.Handle(c.Request.Context(), in.Identity, in.Body)
		c.Header("Content-Type", "application/xml")
		c.String(http.StatusOK, twilio.MessagingResponse(segments...))
	})

	return r
}

// New builds the HTTP server around the router.
func New(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
}
