package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache 进程内缓存
// 适合单实例部署，摘要结果随进程重启丢失
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache(config Config) (Cache, error) {
	ttl := config.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultConfig().DefaultTTL
	}

	cleanup := config.CleanupInterval
	if cleanup <= 0 {
		cleanup = DefaultConfig().CleanupInterval
	}

	return &MemoryCache{
		store: gocache.New(ttl, cleanup),
	}, nil
}

// Get 获取缓存内容
// 键不存在或类型不符都按未命中处理
func (m *MemoryCache) Get(key string) (string, bool, error) {
	value, found := m.store.Get(key)
	if !found {
		return "", false, nil
	}

	str, ok := value.(string)
	if !ok {
		m.store.Delete(key)
		return "", false, nil
	}
	return str, true, nil
}

// Set 设置缓存内容，ttl非正时使用默认过期时间
func (m *MemoryCache) Set(key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

// Delete 删除缓存项
func (m *MemoryCache) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

// Clear 清空所有缓存
func (m *MemoryCache) Clear() error {
	m.store.Flush()
	return nil
}

// 在包初始化时注册内存缓存
func init() {
	RegisterCache("memory", NewMemoryCache)
}
