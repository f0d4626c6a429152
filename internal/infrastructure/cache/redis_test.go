package cache

import (
	"net"
	"testing"
	"time"

	"eventplanner/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	client, err := NewRedisClient(config.RedisConfig{Host: host, Port: port, PoolSize: 2, DialTimeout: time.Second})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 2, client.Options().PoolSize)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	_, err = NewRedisClient(config.RedisConfig{Host: host, Port: port, DialTimeout: 200 * time.Millisecond})
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
