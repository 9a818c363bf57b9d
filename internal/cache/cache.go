package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Cache 摘要结果缓存接口
// 值统一为序列化后的字符串，由调用方负责编解码
type Cache interface {
	Get(key string) (value string, found bool, err error)
	Set(key string, value string, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Config 缓存配置
type Config struct {
	Type            string        // 实现类型："memory"、"redis"
	RedisAddr       string        // Redis地址
	RedisPassword   string        // Redis密码
	RedisDB         int           // Redis数据库编号
	DefaultTTL      time.Duration // 默认过期时间
	CleanupInterval time.Duration // 过期项清理间隔（仅内存缓存）
}

// DefaultConfig 返回默认缓存配置
func DefaultConfig() Config {
	return Config{
		Type:            "memory",
		DefaultTTL:      24 * time.Hour,
		CleanupInterval: 10 * time.Minute,
	}
}

// Factory 缓存工厂函数类型
type Factory func(config Config) (Cache, error)

// 注册的缓存实现
var registry = make(map[string]Factory)

// RegisterCache 注册缓存实现
func RegisterCache(name string, factory Factory) {
	registry[name] = factory
}

// NewCache 按配置类型创建缓存实例
// 未注册的类型回退到内存缓存
func NewCache(config Config) (Cache, error) {
	factory, ok := registry[config.Type]
	if !ok {
		factory = NewMemoryCache
	}
	return factory(config)
}

// GenerateCacheKey 用冒号拼接生成缓存键
func GenerateCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

// SummaryKey 生成摘要结果的缓存键
// 对原文取哈希，同一文本加相同参数命中同一个键
func SummaryKey(text, mode, length string, maxPoints int) string {
	hash := sha256.Sum256([]byte(text))
	digest := hex.EncodeToString(hash[:])
	return GenerateCacheKey("summary", digest, mode, length, strconv.Itoa(maxPoints))
}
