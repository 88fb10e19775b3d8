package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/balwinder10003-code/ATTRAAH/internal/adapter/http/middleware"
	"github.com/balwinder10003-code/ATTRAAH/internal/logging"
)

func NewRouter(eh *EventHandler, th *TokenHandler, authz *middleware.Authz, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(log))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Info("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	v1 := r.Group("/v1")
	{
		v1.POST("/events", authz.Require("events.write"), eh.Ingest)
	}

	return r
}
