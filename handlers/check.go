/*
 * @Date: 2025-06-15 14:10:48
 * @Description: 域名可用性检查处理程序
 */
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"whoisgate/pkg/logger"
	"whoisgate/services"
	"whoisgate/utils"
)

// CheckHandler 返回域名的free/taken/unknown分类结果
// ?server= 跳过解析器直接指定WHOIS服务器，?nocache=1 绕过缓存
func CheckHandler(checker *services.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		domain := c.GetString("domain")
		log := logger.WithRequest(c, "Check")

		ctx, cancel := context.WithTimeout(c.Request.Context(), handlerTimeout)
		defer cancel()

		opts := services.CheckOptions{
			ServerOverride: c.Query("server"),
			SkipCache:      c.Query("nocache") == "1",
		}

		start := time.Now()
		result, err := checker.Check(ctx, domain, opts)
		if err != nil {
			log.Infow("check failed", "domain", domain, "err", err)
			writeCheckError(c, err)
			return
		}

		if result.Cached {
			c.Header("X-Cache", "HIT")
		} else {
			c.Header("X-Cache", "MISS")
		}

		utils.SuccessResponse(c, result, &utils.MetaInfo{
			Cached:     result.Cached,
			Processing: time.Since(start).Milliseconds(),
		})
	}
}
