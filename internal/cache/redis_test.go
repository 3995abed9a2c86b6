package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/plugsync/internal/cache"
)

func TestNewRedisInvalidURL(t *testing.T) {
	_, err := cache.NewRedis("not-a-redis-url", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}

func TestNewRedisValidURL(t *testing.T) {
	// Construction only; no connection is made until first use.
	c, err := cache.NewRedis("redis://localhost:6379/0", 0)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NoError(t, c.Close())
}
