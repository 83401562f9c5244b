/*
 * @Date: 2025-06-15 10:49:21
 * @Description: 基于Redis滑动窗口的分布式限流器
 */
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter 分布式限流器，按key（通常是客户端IP）做滑动窗口计数
type RateLimiter struct {
	rdb       *redis.Client
	keyPrefix string
	limit     int           // 窗口内允许的最大请求数
	window    time.Duration // 时间窗口
}

func NewRateLimiter(rdb *redis.Client, keyPrefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:       rdb,
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
	}
}

// Allow 检查key是否允许通过本次请求
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.keyPrefix, key)

	now := time.Now().UnixNano()
	windowStart := now - int64(rl.window)

	pipe := rl.rdb.Pipeline()
	// 丢弃窗口外的记录，写入本次请求，统计窗口内总数
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, redisKey, &redis.Z{Score: float64(now), Member: now})
	countCmd := pipe.ZCard(ctx, redisKey)
	// 过期时间取窗口的两倍，避免冷key长期占用内存
	pipe.Expire(ctx, redisKey, rl.window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	count, err := countCmd.Result()
	if err != nil {
		return false, err
	}

	return count <= int64(rl.limit), nil
}

// CurrentCount 返回key在当前窗口内的请求数
func (rl *RateLimiter) CurrentCount(ctx context.Context, key string) (int64, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.keyPrefix, key)

	now := time.Now().UnixNano()
	windowStart := now - int64(rl.window)

	pipe := rl.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	countCmd := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return countCmd.Result()
}
