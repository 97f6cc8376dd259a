package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"engagement-service/internal/config"
	"engagement-service/internal/domain/entities"
)

// NewDBConnection 创建数据库连接
func NewDBConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", cfg.DatabaseDSN())
}

// PostgresSource 基于Postgres表的互动数据源
type PostgresSource struct {
	db    *sqlx.DB
	query string
}

// NewPostgresSource 创建Postgres数据源
func NewPostgresSource(db *sqlx.DB, table, keyColumn string) *PostgresSource {
	return &PostgresSource{
		db:    db,
		query: buildSelectQuery(table, keyColumn),
	}
}

// buildSelectQuery 构建全表查询，分组列别名为$vectorize
func buildSelectQuery(table, keyColumn string) string {
	columns := make([]string, 0, len(entities.MetricFields)+1)
	columns = append(columns, fmt.Sprintf("%s AS %s", pq.QuoteIdentifier(keyColumn), pq.QuoteIdentifier(entities.FieldContentKey)))
	for _, f := range entities.MetricFields {
		columns = append(columns, pq.QuoteIdentifier(f))
	}

	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}

	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), strings.Join(parts, "."))
}

// FetchRecords 读取表中全部记录
func (s *PostgresSource) FetchRecords(ctx context.Context) ([]entities.EngagementRecord, error) {
	rows, err := s.db.QueryxContext(ctx, s.query)
	if err != nil {
		return nil, errors.Wrap(err, "查询互动数据失败")
	}
	defer rows.Close()

	records := make([]entities.EngagementRecord, 0)
	// 逐行读取为map，与文档使用同一套数值转换
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, errors.Wrap(err, "读取互动数据失败")
		}
		records = append(records, entities.NewEngagementRecord(row))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "遍历互动数据失败")
	}

	return records, nil
}

// Close 关闭数据库连接
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
