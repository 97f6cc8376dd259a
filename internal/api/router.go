package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"engagement-service/internal/api/handlers"
	"engagement-service/internal/api/middleware"
	"engagement-service/internal/logger"
	"engagement-service/internal/metrics"
	"engagement-service/internal/services"
)

// Dependencies 路由依赖
type Dependencies struct {
	EngagementService *services.EngagementService
	FlowService       *services.FlowService
	Metrics           *metrics.Metrics
	Logger            logger.Logger
}

// NewRouter 创建API路由
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Trace(deps.Logger))
	router.Use(middleware.Metrics(deps.Metrics))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))

	analyzeHandler := handlers.NewAnalyzeHandler(deps.FlowService, deps.Metrics)
	engagementHandler := handlers.NewEngagementHandler(deps.EngagementService, deps.Metrics)

	router.POST("/analyze", analyzeHandler.Analyze)
	router.GET("/performance", engagementHandler.GetPerformance)
	router.GET("/engagement", engagementHandler.GetEngagement)

	return router
}
