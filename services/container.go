/*
 * @Date: 2025-06-15 12:01:27
 * @Description: 服务容器，统一管理所有服务组件
 */
package services

import (
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"whoisgate/pkg/logger"
	"whoisgate/registry"
)

// ServiceContainer 服务容器，聚合核心组件并负责生命周期
type ServiceContainer struct {
	RedisClient   *redis.Client
	Registry      *registry.Registry
	Resolver      *Resolver
	QueryClient   *QueryClient
	Classifier    *Classifier
	Checker       *Checker
	WorkerPool    *WorkerPool
	HealthChecker *HealthChecker
	Limiter       *RateLimiter
}

// NewServiceContainer 创建服务容器并完成核心组件装配
func NewServiceContainer(redisClient *redis.Client, workerPoolSize int) *ServiceContainer {
	log := logger.Module("Container")

	sc := &ServiceContainer{
		RedisClient: redisClient,
		Registry:    registry.New(),
	}

	sc.Resolver = NewResolver(sc.Registry)

	sc.QueryClient = NewQueryClient(whoisTimeoutFromEnv())
	if perSecond := whoisRateFromEnv(); perSecond > 0 {
		sc.QueryClient.SetPacing(perSecond, 1)
	}

	sc.Classifier = NewClassifier()
	sc.Checker = NewChecker(sc.Resolver, sc.QueryClient, sc.Classifier, redisClient)

	log.Infof("starting worker pool, size=%d", workerPoolSize)
	sc.WorkerPool = NewWorkerPool(workerPoolSize)
	sc.WorkerPool.Start()

	return sc
}

// InitializeHealthChecker 初始化并启动健康检查器
func (sc *ServiceContainer) InitializeHealthChecker() {
	sc.HealthChecker = NewHealthChecker(sc.RedisClient)
	sc.HealthChecker.Start()
}

// InitializeLimiter 初始化API限流器
func (sc *ServiceContainer) InitializeLimiter(key string, limit int, window time.Duration) {
	sc.Limiter = NewRateLimiter(sc.RedisClient, key, limit, window)
}

// Shutdown 关闭所有服务
func (sc *ServiceContainer) Shutdown() {
	log := logger.Module("Container")

	if sc.WorkerPool != nil {
		log.Info("stopping worker pool...")
		sc.WorkerPool.Stop()
	}

	if sc.HealthChecker != nil {
		log.Info("stopping health checker...")
		sc.HealthChecker.Stop()
	}

	if sc.RedisClient != nil {
		log.Info("closing redis client...")
		sc.RedisClient.Close()
	}

	log.Info("all services stopped")
}

func whoisTimeoutFromEnv() time.Duration {
	if env := os.Getenv("WHOIS_TIMEOUT"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			return d
		}
	}
	return defaultWhoisWait
}

func whoisRateFromEnv() float64 {
	if env := os.Getenv("WHOIS_RATE"); env != "" {
		if f, err := strconv.ParseFloat(env, 64); err == nil && f > 0 {
			return f
		}
	}
	return 0
}
