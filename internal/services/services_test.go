package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-service/internal/domain/entities"
	"engagement-service/internal/logger"
)

type fakeSource struct {
	records []entities.EngagementRecord
	err     error
}

func (f *fakeSource) FetchRecords(ctx context.Context) ([]entities.EngagementRecord, error) {
	return f.records, f.err
}

type fakeRunner struct {
	text   string
	result json.RawMessage
	err    error
}

func (f *fakeRunner) RunFlow(ctx context.Context, text string) (json.RawMessage, error) {
	f.text = text
	return f.result, f.err
}

func TestEngagementServiceSummaries(t *testing.T) {
	svc := NewEngagementService(&fakeSource{records: []entities.EngagementRecord{
		record("a", 1, 1, 0, 0, 0, 0),
		record("b", 2, 0, 0, 0, 0, 0),
	}}, logger.Discard())

	summaries, err := svc.Summaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	entries, err := svc.DailyPerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Mon", entries[0].Name)
	assert.Equal(t, 2.0, *entries[1].PrevEngagement)
}

func TestEngagementServiceSourceFailure(t *testing.T) {
	svc := NewEngagementService(&fakeSource{err: errors.New("connection refused")}, logger.Discard())

	_, err := svc.Summaries(context.Background())
	require.Error(t, err)
	assert.True(t, IsUpstream(err))
	assert.Equal(t, "connection refused", err.Error())

	_, err = svc.DailyPerformance(context.Background())
	assert.True(t, IsUpstream(err))
}

func TestFlowServiceRejectsEmptyText(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewFlowService(runner, logger.Discard())

	_, err := svc.Analyze(context.Background(), "")
	assert.True(t, IsInvalidInput(err))
	assert.Empty(t, runner.text)
}

func TestFlowServiceReturnsUpstreamJSON(t *testing.T) {
	runner := &fakeRunner{result: json.RawMessage(`{"outputs":[]}`)}
	svc := NewFlowService(runner, logger.Discard())

	result, err := svc.Analyze(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", runner.text)
	assert.JSONEq(t, `{"outputs":[]}`, string(result))
}

func TestFlowServiceWrapsFailures(t *testing.T) {
	svc := NewFlowService(&fakeRunner{err: errors.New("dial tcp: timeout")}, logger.Discard())

	_, err := svc.Analyze(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, IsUpstream(err))
	assert.False(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), "dial tcp")
}

func TestUpstreamNil(t *testing.T) {
	assert.Nil(t, Upstream(nil))
}
