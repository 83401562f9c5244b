/*
 * @Date: 2025-06-15 14:45:31
 * @Description: API路由注册
 */
package routes

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"whoisgate/handlers"
	"whoisgate/middleware"
	"whoisgate/pkg/logger"
	"whoisgate/pkg/metrics"
	"whoisgate/services"
)

// RegisterAPIRoutes 注册所有API路由
func RegisterAPIRoutes(r *gin.Engine, sc *services.ServiceContainer) {
	// 健康检查、令牌签发、指标在认证范围之外
	r.GET("/api/health", handlers.HealthCheckHandler(sc.HealthChecker))
	r.POST("/api/auth/token", middleware.GenerateToken(sc.RedisClient))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiv1 := r.Group("/api/v1")

	if os.Getenv("DISABLE_API_SECURITY") != "true" {
		apiv1.Use(middleware.AuthRequired(sc.RedisClient))

		rateLimitConfig := middleware.DefaultRateLimitConfig()
		rateLimitConfig.RedisClient = sc.RedisClient
		apiv1.Use(middleware.RateLimitWithConfig(rateLimitConfig))
	} else {
		logger.Module("Routes").Warn("API security disabled! anyone can reach the API, do not run like this in production")
	}

	// 原始WHOIS查询
	whoisGroup := apiv1.Group("/whois")
	whoisGroup.Use(middleware.DomainValidation())
	whoisGroup.GET("", handlers.WhoisHandler(sc.Checker))
	whoisGroup.GET("/:domain", handlers.WhoisHandler(sc.Checker))

	// 可用性检查
	checkGroup := apiv1.Group("/check")
	checkGroup.Use(middleware.DomainValidation())
	checkGroup.GET("", handlers.CheckHandler(sc.Checker))
	checkGroup.GET("/:domain", handlers.CheckHandler(sc.Checker))

	// 批量检查走工作池
	apiv1.POST("/check/batch", handlers.BatchCheckHandler(sc.Checker, sc.WorkerPool))

	// 注册表枚举
	apiv1.GET("/tlds", handlers.TLDsHandler(sc.Registry))

	// 确保限流器存在，供需要手动检查的场景复用
	if sc.Limiter == nil && sc.RedisClient != nil {
		sc.InitializeLimiter("limit:api", 60, time.Minute)
	}
}
