package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	svc.initRedisClient()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis != nil {
		ctx := context.Background()
		_, err := svc.redis.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}
	return nil
}

func (svc *RedisService) initRedisClient() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
}

func (svc *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	var data []byte
	var err error

	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		data, err = json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}
	}

	return svc.redis.Set(ctx, key, data, expiration).Err()
}

func (svc *RedisService) Get(ctx context.Context, key string) (string, error) {
	if svc.redis == nil {
		return "", fmt.Errorf("redis client not initialized")
	}

	result, err := svc.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return result, err
}

func (svc *RedisService) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if svc.redis == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Expire(ctx, key, expiration).Err()
}

func (svc *RedisService) TTL(ctx context.Context, key string) (time.Duration, error) {
	if svc.redis == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.TTL(ctx, key).Result()
}

func (svc *RedisService) Increment(ctx context.Context, key string) (int64, error) {
	if svc.redis == nil {
		return 0, fmt.Errorf("redis client not initialized")
	}

	return svc.redis.Incr(ctx, key).Result()
}
