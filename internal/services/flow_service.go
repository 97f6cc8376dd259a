package services

import (
	"context"
	"encoding/json"

	"engagement-service/internal/logger"
)

// FlowRunner 流程服务调用接口
type FlowRunner interface {
	RunFlow(ctx context.Context, text string) (json.RawMessage, error)
}

// FlowService 文本分析服务，将文本转发给流程服务
type FlowService struct {
	runner FlowRunner
	logger logger.Logger
}

// NewFlowService 创建文本分析服务
func NewFlowService(runner FlowRunner, log logger.Logger) *FlowService {
	return &FlowService{
		runner: runner,
		logger: log,
	}
}

// Analyze 调用流程服务分析文本，原样返回流程服务的JSON响应
func (s *FlowService) Analyze(ctx context.Context, text string) (json.RawMessage, error) {
	// 检查参数
	if text == "" {
		s.logger.WarnContext(ctx, "文本为空，拒绝请求")
		return nil, ErrInvalidInput
	}

	s.logger.InfoContext(ctx, "调用流程服务: 文本长度=%d", len(text))

	result, err := s.runner.RunFlow(ctx, text)
	if err != nil {
		s.logger.WithError(err).ErrorContext(ctx, "流程服务调用失败")
		return nil, Upstream(err)
	}
	return result, nil
}
