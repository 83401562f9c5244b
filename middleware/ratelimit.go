/*
 * @Date: 2025-06-15 13:22:50
 * @Description: API限流中间件 - Redis滑动窗口，带内存降级
 */
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"whoisgate/pkg/logger"
	"whoisgate/services"
	"whoisgate/utils"
)

// RateLimitConfig 限流中间件配置
type RateLimitConfig struct {
	RedisClient *redis.Client // 为nil时退化为进程内限流
	Key         string
	Limit       int
	Window      time.Duration
	Burst       int
	ExcludeIPs  []string
}

// DefaultRateLimitConfig 默认限流配置
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Key:        "limit:api",
		Limit:      60,
		Window:     time.Minute,
		Burst:      10,
		ExcludeIPs: []string{"127.0.0.1", "::1"},
	}
}

// ipRateLimiter 进程内的按IP令牌桶，Redis不可用时的降级路径
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func newIPRateLimiter(r rate.Limit, b int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[ip] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// RateLimit 默认配置的限流中间件
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	config := DefaultRateLimitConfig()
	config.RedisClient = rdb
	return RateLimitWithConfig(config)
}

// RateLimitWithConfig 带配置的限流中间件
func RateLimitWithConfig(config RateLimitConfig) gin.HandlerFunc {
	var sliding *services.RateLimiter
	if config.RedisClient != nil {
		sliding = services.NewRateLimiter(config.RedisClient, config.Key, config.Limit, config.Window)
	}

	perSecond := rate.Limit(float64(config.Limit) / config.Window.Seconds())
	memory := newIPRateLimiter(perSecond, config.Burst)

	excluded := make(map[string]struct{}, len(config.ExcludeIPs))
	for _, ip := range config.ExcludeIPs {
		excluded[ip] = struct{}{}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if _, ok := excluded[ip]; ok {
			c.Next()
			return
		}

		if sliding != nil {
			allowed, err := sliding.Allow(c.Request.Context(), ip)
			if err != nil {
				// Redis故障时降级到内存限流，不让限流器故障拖垮服务
				logger.WithRequest(c, "RateLimit").Warnw("redis limiter failed, falling back", "err", err)
			} else if !allowed {
				utils.ErrorResponse(c, 429, "RATE_LIMITED", "too many requests, please try again later")
				c.Abort()
				return
			} else {
				c.Next()
				return
			}
		}

		if !memory.allow(ip) {
			utils.ErrorResponse(c, 429, "RATE_LIMITED", "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
