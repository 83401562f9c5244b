/*
 * @Date: 2025-06-15 13:31:15
 * @Description: 域名参数验证中间件
 */
package middleware

import (
	"github.com/gin-gonic/gin"

	"whoisgate/pkg/logger"
	"whoisgate/utils"
)

// DomainValidation 提取并验证域名参数，通过后放入上下文
// 优先从路径参数获取，其次从查询参数获取
func DomainValidation() gin.HandlerFunc {
	return func(c *gin.Context) {
		domain := c.Param("domain")
		if domain == "" {
			domain = c.Query("domain")
		}

		if domain == "" {
			utils.ErrorResponse(c, 400, "MISSING_PARAMETER", "domain parameter is required")
			c.Abort()
			return
		}

		if !utils.IsValidDomain(domain) {
			logger.WithRequest(c, "Validator").Infow("rejected invalid domain", "domain", domain)
			utils.ErrorResponse(c, 400, "INVALID_DOMAIN", "invalid domain format")
			c.Abort()
			return
		}

		c.Set("domain", utils.SanitizeDomain(domain))
		c.Next()
	}
}
