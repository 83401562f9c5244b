/*
 * @Date: 2025-06-15 14:02:36
 * @Description: 原始WHOIS查询处理程序
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

const handlerTimeout = 15 * time.Second

// WhoisHandler 返回域名的原始WHOIS响应文本
func WhoisHandler(checker *services.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		domain := c.GetString("domain")
		log := logger.WithRequest(c, "Whois")

		ctx, cancel := context.WithTimeout(c.Request.Context(), handlerTimeout)
		defer cancel()

		opts := services.CheckOptions{ServerOverride: c.Query("server")}

		start := time.Now()
		result, err := checker.Lookup(ctx, domain, opts)
		if err != nil {
			log.Infow("lookup failed", "domain", domain, "err", err)
			writeCheckError(c, err)
			return
		}

		utils.SuccessResponse(c, result, &utils.MetaInfo{
			Processing: time.Since(start).Milliseconds(),
		})
	}
}
