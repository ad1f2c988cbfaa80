package database

import (
	"context"
	"courseforge_backend/internal/config"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// InitRedis 初始化Redis客户端，连接失败时返回错误由调用方决定是否降级
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
