package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisOpTimeout 单次Redis操作的超时时间
const redisOpTimeout = 3 * time.Second

// RedisCache 基于Redis的共享缓存
// 多个实例共享同一份摘要结果缓存
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 创建Redis缓存并验证连接
func NewRedisCache(config Config) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// opContext 创建带超时的操作上下文
func (r *RedisCache) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisOpTimeout)
}

// Get 获取缓存内容，键不存在按未命中处理
func (r *RedisCache) Get(key string) (string, bool, error) {
	ctx, cancel := r.opContext()
	defer cancel()

	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set 设置缓存内容
func (r *RedisCache) Set(key string, value string, ttl time.Duration) error {
	ctx, cancel := r.opContext()
	defer cancel()

	return r.client.Set(ctx, key, value, ttl).Err()
}

// Delete 删除缓存项
func (r *RedisCache) Delete(key string) error {
	ctx, cancel := r.opContext()
	defer cancel()

	return r.client.Del(ctx, key).Err()
}

// Clear 清空当前Redis数据库中的所有键
func (r *RedisCache) Clear() error {
	ctx, cancel := r.opContext()
	defer cancel()

	return r.client.FlushDB(ctx).Err()
}

// 在包初始化时注册Redis缓存
func init() {
	RegisterCache("redis", NewRedisCache)
}
