package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-service/internal/metrics"
	"engagement-service/internal/services"
)

// AnalyzeHandler 文本分析接口
type AnalyzeHandler struct {
	flowService *services.FlowService
	metrics     *metrics.Metrics
}

// NewAnalyzeHandler 创建文本分析处理器
func NewAnalyzeHandler(flowService *services.FlowService, m *metrics.Metrics) *AnalyzeHandler {
	return &AnalyzeHandler{
		flowService: flowService,
		metrics:     m,
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Analyze 将文本转发到流程服务
// POST /analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	// 解析请求体，格式错误与缺少文本同样处理
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	// 调用流程服务
	result, err := h.flowService.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		if services.IsUpstream(err) {
			h.metrics.UpstreamErrors.WithLabelValues("flow").Inc()
		}
		respondError(c, err)
		return
	}

	// 原样返回流程服务的JSON
	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}
