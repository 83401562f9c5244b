/*
 * @Date: 2025-06-15 14:19:27
 * @Description: 批量域名检查处理程序
 */
package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"whoisgate/pkg/logger"
	"whoisgate/services"
	"whoisgate/types"
	"whoisgate/utils"
)

const (
	batchTimeout    = 60 * time.Second
	batchMaxDomains = 100
)

// BatchRequest 批量检查请求体
type BatchRequest struct {
	Domains []string `json:"domains" binding:"required"`
}

// BatchCheckHandler 批量检查一组域名
// 结果保持输入顺序，单个域名失败不影响其他条目
func BatchCheckHandler(checker *services.Checker, pool *services.WorkerPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.WithRequest(c, "Batch")

		var req BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, 400, "INVALID_REQUEST", "invalid request format: "+err.Error())
			return
		}
		if len(req.Domains) == 0 {
			utils.ErrorResponse(c, 400, "MISSING_PARAMETER", "domains list is empty")
			return
		}
		if len(req.Domains) > batchMaxDomains {
			utils.ErrorResponse(c, 400, "TOO_MANY_DOMAINS", "batch limited to 100 domains")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), batchTimeout)
		defer cancel()

		start := time.Now()
		results := make([]types.BatchItem, len(req.Domains))
		var wg sync.WaitGroup

		saturated := false
		for i, domain := range req.Domains {
			i, domain := i, domain
			wg.Add(1)
			submitted := pool.SubmitWithContext(ctx, func() {
				defer wg.Done()
				results[i] = checker.CheckOne(ctx, domain, services.CheckOptions{})
			})
			if !submitted {
				wg.Done()
				saturated = true
				break
			}
		}

		if saturated {
			// 池已饱和，整批拒绝让客户端稍后重试，而不是返回200里混错误条目
			cancel()
			wg.Wait()
			log.Warnw("batch rejected, worker pool saturated", "domains", len(req.Domains))
			utils.ErrorResponse(c, 503, "SERVICE_BUSY", "worker pool saturated, retry later")
			return
		}

		wg.Wait()

		log.Infow("batch done", "domains", len(req.Domains), "elapsed", time.Since(start).Round(time.Millisecond))

		utils.SuccessResponse(c, gin.H{"results": results}, &utils.MetaInfo{
			Processing: time.Since(start).Milliseconds(),
		})
	}
}
