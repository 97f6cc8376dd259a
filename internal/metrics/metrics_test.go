package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewRegistersCollectors(t *testing.T) {
	m := New()

	m.RequestsTotal.WithLabelValues("/engagement", "GET", "200").Inc()
	m.UpstreamErrors.WithLabelValues("record_store").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/engagement", "GET", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.UpstreamErrors.WithLabelValues("record_store")))

	// 两个实例互不冲突
	assert.NotPanics(t, func() { New() })
}
