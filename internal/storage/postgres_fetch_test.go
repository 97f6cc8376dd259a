package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-service/internal/services"
)

var postgresColumns = []string{"$vectorize", "likes", "comments", "shares", "views", "clicks", "impressions"}

func newMockPostgres(t *testing.T) (*PostgresSource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	source := NewPostgresSource(sqlx.NewDb(db, "postgres"), "posts", "content_key")
	t.Cleanup(func() {
		mock.ExpectClose()
		assert.NoError(t, source.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return source, mock
}

func TestPostgresFetchRecordsCoercesColumns(t *testing.T) {
	source, mock := newMockPostgres(t)

	// NUMERIC列以[]byte返回，INTEGER列以int64返回
	rows := sqlmock.NewRows(postgresColumns).
		AddRow([]byte("reel"), []byte("10.5"), int64(3), nil, []byte("100"), int64(2), []byte("not-a-number")).
		AddRow([]byte("reel"), int64(4), nil, int64(1), nil, nil, int64(50)).
		AddRow(nil, int64(99), int64(99), int64(99), nil, nil, nil)
	mock.ExpectQuery(buildSelectQuery("posts", "content_key")).WillReturnRows(rows)

	records, err := source.FetchRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "reel", records[0].ContentKey)
	assert.Equal(t, 13.5, records[0].Engagement())
	assert.Equal(t, 102.0, records[0].Reach())
	assert.False(t, records[2].HasKey)

	summaries := services.Aggregate(records)
	require.Len(t, summaries, 1)
	assert.Equal(t, "reel", summaries[0].ContentKey)
	assert.Equal(t, 2, summaries[0].TotalPosts)
	assert.Equal(t, 17.5, summaries[0].TotalEngagement)
	assert.Equal(t, 153.0, summaries[0].TotalReach)
	assert.Equal(t, 100.0, summaries[0].EngagementPercentage)
}

func TestPostgresFetchRecordsEmptyTable(t *testing.T) {
	source, mock := newMockPostgres(t)
	mock.ExpectQuery(buildSelectQuery("posts", "content_key")).WillReturnRows(sqlmock.NewRows(postgresColumns))

	records, err := source.FetchRecords(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestPostgresFetchRecordsQueryError(t *testing.T) {
	source, mock := newMockPostgres(t)
	cause := errors.New(`pq: relation "posts" does not exist`)
	mock.ExpectQuery(buildSelectQuery("posts", "content_key")).WillReturnError(cause)

	_, err := source.FetchRecords(context.Background())
	require.Error(t, err)
	assert.Equal(t, cause, errors.Cause(err))
	assert.Contains(t, err.Error(), "查询互动数据失败")
	assert.Contains(t, err.Error(), "does not exist")
}

func TestPostgresFetchRecordsRowError(t *testing.T) {
	source, mock := newMockPostgres(t)
	cause := errors.New("connection reset by peer")
	rows := sqlmock.NewRows(postgresColumns).
		AddRow([]byte("a"), int64(1), int64(1), int64(1), int64(1), int64(1), int64(1)).
		AddRow([]byte("b"), int64(1), int64(1), int64(1), int64(1), int64(1), int64(1)).
		RowError(1, cause)
	mock.ExpectQuery(buildSelectQuery("posts", "content_key")).WillReturnRows(rows)

	_, err := source.FetchRecords(context.Background())
	require.Error(t, err)
	assert.Equal(t, cause, errors.Cause(err))
	assert.Contains(t, err.Error(), "遍历互动数据失败")
}
