package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/running-records-go/internal/config"
	"github.com/jengzang/running-records-go/internal/handler"
	"github.com/jengzang/running-records-go/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Running dashboard API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	{
		api.GET("/activities", h.Dashboard.GetActivities)
		api.GET("/dashboard", h.Dashboard.GetDashboard)

		// 统计接口
		stats := api.Group("/stats")
		{
			stats.GET("/monthly", h.Dashboard.GetMonthly)
			stats.GET("/rolling-pace", h.Dashboard.GetRollingPace)
			stats.GET("/shoes/fastest-pace", h.Dashboard.GetFastestPace)
			stats.GET("/shoes/usage", h.Dashboard.GetShoeUsage)
		}

		api.GET("/export/:format", h.Export.Export)
	}

	return r
}
