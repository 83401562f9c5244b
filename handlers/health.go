/*
 * @Date: 2025-06-15 14:33:19
 * @Description: 健康检查处理程序
 */
package handlers

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"whoisgate/services"
)

// HealthCheckHandler 返回服务整体状态和最近一轮上游探测结果
// ?refresh=true 同步执行一轮新探测后再返回
func HealthCheckHandler(healthChecker *services.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if healthChecker != nil && c.Query("refresh") == "true" {
			healthChecker.ForceRefresh()
		}

		response := gin.H{
			"status":   "up",
			"version":  os.Getenv("APP_VERSION"),
			"time":     time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{},
		}

		if healthChecker != nil {
			serviceStatus := healthChecker.GetHealthStatus()
			response["services"] = serviceStatus

			// 任何一个子服务非up即降级
			overall := "up"
			for _, info := range serviceStatus {
				if m, ok := info.(map[string]interface{}); ok {
					if status, exists := m["status"]; exists && status != "up" {
						overall = "degraded"
						break
					}
				}
			}
			response["status"] = overall
		}

		c.JSON(200, response)
	}
}
