package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goatkit/goatdesk/internal/apierrors"
	"github.com/goatkit/goatdesk/internal/middleware"
	"github.com/goatkit/goatdesk/internal/service"
)

// Version is the API version reported at the root endpoint.
const Version = "1.0.0"

// RouterOptions carries the cross-cutting pieces the router wires in.
type RouterOptions struct {
	Logger *slog.Logger

	// HealthCheck probes the storage backend; nil means always healthy.
	HealthCheck func() error

	// RateLimitPerMinute caps requests per client IP. 0 disables limiting.
	RateLimitPerMinute int
}

// NewRouter assembles the gin engine: middleware chain, the /tickets surface
// and the operational endpoints.
func NewRouter(svc *service.TicketService, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(opts.Logger))
	if opts.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimit(middleware.NewRateLimiter(), opts.RateLimitPerMinute))
	}

	h := NewTicketHandler(svc)

	tickets := router.Group("/tickets")
	{
		tickets.POST("", h.Create)
		tickets.GET("", h.List)
		tickets.GET("/:id", h.Get)
		tickets.PUT("/:id", h.Update)
		tickets.PATCH("/:id/close", h.Close)
		tickets.PATCH("/:id/stall", h.Stall)
		tickets.PATCH("/:id/reopen", h.Reopen)
		tickets.DELETE("/:id", h.Delete)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the goatdesk ticket API",
			"version": Version,
		})
	})

	router.GET("/healthz", func(c *gin.Context) {
		if opts.HealthCheck != nil {
			if err := opts.HealthCheck(); err != nil {
				apierrors.Error(c, apierrors.CodeServiceUnavailable)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
