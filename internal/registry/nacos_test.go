package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServerAddrs(t *testing.T) {
	configs, err := ParseServerAddrs("10.0.0.1:8848, nacos.local:8849")
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "10.0.0.1", configs[0].IpAddr)
	assert.Equal(t, uint64(8848), configs[0].Port)
	assert.Equal(t, "nacos.local", configs[1].IpAddr)
	assert.Equal(t, uint64(8849), configs[1].Port)
}

func TestParseServerAddrsInvalid(t *testing.T) {
	for _, addr := range []string{"", "nacos", "nacos:port"} {
		_, err := ParseServerAddrs(addr)
		assert.Error(t, err, addr)
	}
}

func TestParsePort(t *testing.T) {
	port, err := ParsePort("5000")
	require.NoError(t, err)
	assert.Equal(t, 5000, port)

	for _, s := range []string{"", "http", "0", "70000", "-1"} {
		_, err := ParsePort(s)
		assert.Error(t, err, s)
	}
}
