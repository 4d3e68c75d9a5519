package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache Redis缓存实现
type RedisCache struct {
	client *redis.Client
	prefix string
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisCache 创建Redis缓存实例
func NewRedisCache(config *Config) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "qrmenu:cache"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping 测试Redis连接
func (c *RedisCache) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

// key 拼接带前缀的缓存键
func (c *RedisCache) key(name string) string {
	return fmt.Sprintf("%s:%s", c.prefix, name)
}

// Get 读取缓存，未命中返回redis.Nil
func (c *RedisCache) Get(ctx context.Context, name string) (string, error) {
	return c.client.Get(ctx, c.key(name)).Result()
}

// Set 写入缓存
func (c *RedisCache) Set(ctx context.Context, name string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(name), value, ttl).Err()
}

// Delete 删除缓存
func (c *RedisCache) Delete(ctx context.Context, name string) error {
	return c.client.Del(ctx, c.key(name)).Err()
}

// IsMiss 判断是否为未命中错误
func IsMiss(err error) bool {
	return err == redis.Nil
}
