/*
 * @Date: 2025-06-15 13:05:11
 * @Description: Request ID中间件 - 请求追踪
 */
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"whoisgate/pkg/logger"
)

// RequestID 生成或传播请求ID
// 优先使用客户端提供的X-Request-ID头，否则生成新UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		// gin context供中间件和handler使用
		c.Set("request_id", requestID)

		// 标准context供service层使用
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}
