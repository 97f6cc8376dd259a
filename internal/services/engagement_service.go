package services

import (
	"context"

	"engagement-service/internal/domain/entities"
	"engagement-service/internal/logger"
)

// RecordSource 互动数据源接口
type RecordSource interface {
	// FetchRecords 获取全部互动记录
	FetchRecords(ctx context.Context) ([]entities.EngagementRecord, error)
}

// EngagementService 互动统计服务
type EngagementService struct {
	source RecordSource
	logger logger.Logger
}

// NewEngagementService 创建互动统计服务
func NewEngagementService(source RecordSource, log logger.Logger) *EngagementService {
	return &EngagementService{
		source: source,
		logger: log,
	}
}

// Summaries 获取按内容分组的互动汇总
func (s *EngagementService) Summaries(ctx context.Context) ([]entities.EngagementSummary, error) {
	// 每次请求都重新读取全部记录
	records, err := s.source.FetchRecords(ctx)
	if err != nil {
		s.logger.WithError(err).ErrorContext(ctx, "获取互动记录失败")
		return nil, Upstream(err)
	}

	summaries := Aggregate(records)
	s.logger.DebugContext(ctx, "互动数据汇总完成: 记录=%d, 分组=%d", len(records), len(summaries))
	return summaries, nil
}

// DailyPerformance 获取按工作日标记的表现数据
func (s *EngagementService) DailyPerformance(ctx context.Context) ([]entities.DailyPerformance, error) {
	summaries, err := s.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	return ToDailyEntries(summaries), nil
}
