/*
 * @Date: 2025-06-15 13:09:40
 * @Description: 错误处理中间件
 */
package middleware

import (
	"github.com/gin-gonic/gin"

	"whoisgate/pkg/logger"
	"whoisgate/utils"
)

// ErrorHandler 兜底处理handler链中挂到gin.Context上的错误
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			logger.WithRequest(c, "HTTP").Errorw("unhandled error", "path", c.Request.URL.Path, "err", err)

			if !c.Writer.Written() {
				utils.ErrorResponse(c, 500, "INTERNAL_SERVER_ERROR", "internal server error")
			}
		}
	}
}
