package providers

import (
	"surveysync/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

func cacheConfig(enabled bool, size int, interval time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
		},
		Sync: structures.SyncConfig{
			PollInterval: interval,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	logger := &cacheTestLogger{}
	c := NewCacheProvider(cacheConfig(false, 10, 5*time.Second), logger)
	_, ok := c.Get("surveys:0")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	logger := &cacheTestLogger{}
	c := NewCacheProvider(cacheConfig(true, 0, 5*time.Second), logger)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_EnabledReturnsCacheProvider(t *testing.T) {
	logger := &cacheTestLogger{}
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), logger)
	assert.IsType(t, &CacheProvider{}, c)
}

func TestCacheProvider_SetAndGet(t *testing.T) {
	logger := &cacheTestLogger{}
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), logger)

	c.Set("surveys:1", []byte(`{"sequence":1}`))
	val, ok := c.Get("surveys:1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"sequence":1}`), val)
}

func TestCacheProvider_Miss(t *testing.T) {
	logger := &cacheTestLogger{}
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), logger)

	val, ok := c.Get("transactions:9")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	logger := &cacheTestLogger{}
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), logger)

	c.Set("surveys:1", []byte(`{"sequence":1}`))
	c.Set("surveys:1", []byte(`{"sequence":1,"surveys":[]}`))

	val, ok := c.Get("surveys:1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"sequence":1,"surveys":[]}`), val)
}

func TestNoopCache_AlwaysMiss(t *testing.T) {
	c := &noopCache{}
	c.Set("surveys:1", []byte(`{"sequence":1}`))

	val, ok := c.Get("surveys:1")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_Clear(t *testing.T) {
	logger := &cacheTestLogger{}
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), logger)

	c.Set("surveys:1", []byte(`{"sequence":1}`))
	c.Clear()

	_, ok := c.Get("surveys:1")
	assert.False(t, ok)
}

func TestCacheProvider_TTLExpiry(t *testing.T) {
	logger := &cacheTestLogger{}
	// TTL = interval + 1 = 2s
	c := NewCacheProvider(cacheConfig(true, 1, 1*time.Second), logger)

	c.Set("surveys:1", []byte(`{"sequence":1}`))
	val, ok := c.Get("surveys:1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"sequence":1}`), val)

	time.Sleep(2100 * time.Millisecond)

	_, ok = c.Get("surveys:1")
	assert.False(t, ok)
}

func TestCacheProvider_VersionedKeysDoNotCollide(t *testing.T) {
	logger := &cacheTestLogger{}
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), logger)

	c.Set("surveys:1", []byte(`{"sequence":1}`))
	c.Set("surveys:2", []byte(`{"sequence":2}`))

	old, ok := c.Get("surveys:1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"sequence":1}`), old)

	current, ok := c.Get("surveys:2")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"sequence":2}`), current)
}
