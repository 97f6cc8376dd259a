package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-service/internal/metrics"
	"engagement-service/internal/services"
)

// EngagementHandler 互动统计接口
type EngagementHandler struct {
	engagementService *services.EngagementService
	metrics           *metrics.Metrics
}

// NewEngagementHandler 创建互动统计处理器
func NewEngagementHandler(engagementService *services.EngagementService, m *metrics.Metrics) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		metrics:           m,
	}
}

// GetEngagement 按内容分组的互动汇总
// GET /engagement
func (h *EngagementHandler) GetEngagement(c *gin.Context) {
	summaries, err := h.engagementService.Summaries(c.Request.Context())
	if err != nil {
		h.metrics.UpstreamErrors.WithLabelValues("record_store").Inc()
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetPerformance 按工作日标记的表现数据
// GET /performance
func (h *EngagementHandler) GetPerformance(c *gin.Context) {
	entries, err := h.engagementService.DailyPerformance(c.Request.Context())
	if err != nil {
		h.metrics.UpstreamErrors.WithLabelValues("record_store").Inc()
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
