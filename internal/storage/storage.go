package storage

import (
	"net/http"

	"github.com/pkg/errors"

	"engagement-service/internal/config"
	"engagement-service/internal/domain/entities"
	"engagement-service/internal/services"
)

// Source 可关闭的互动数据源
type Source interface {
	services.RecordSource
	Close() error
}

// NewSource 根据配置创建互动数据源
func NewSource(cfg *config.Config) (Source, error) {
	switch cfg.RecordSource {
	case config.SourceAstra:
		return NewAstraSource(cfg.Astra, &http.Client{}), nil
	case config.SourcePostgres:
		db, err := NewDBConnection(cfg.Database)
		if err != nil {
			return nil, errors.Wrap(err, "连接数据库失败")
		}
		return NewPostgresSource(db, cfg.Database.Table, cfg.Database.ContentKeyColumn), nil
	default:
		return nil, errors.Errorf("不支持的数据源类型: %s", cfg.RecordSource)
	}
}

// projection 需要读取的字段
func projection() map[string]int {
	p := map[string]int{entities.FieldContentKey: 1}
	for _, f := range entities.MetricFields {
		p[f] = 1
	}
	return p
}
