/*
 * @Date: 2025-06-15 14:27:53
 * @Description: TLD注册表枚举处理程序
 */
package handlers

import (
	"github.com/gin-gonic/gin"

	"whoisgate/registry"
	"whoisgate/utils"
)

// TLDsHandler 枚举注册表：后缀到WHOIS服务器的完整映射
// 没有公共服务器的后缀返回null，与缺失条目区分
func TLDsHandler(reg *registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		suffixes := reg.Suffixes()

		entries := make([]gin.H, 0, len(suffixes))
		for _, suffix := range suffixes {
			server, _ := reg.Lookup(suffix)
			entry := gin.H{"suffix": suffix}
			if server == "" {
				entry["server"] = nil
			} else {
				entry["server"] = server
			}
			entries = append(entries, entry)
		}

		utils.SuccessResponse(c, gin.H{
			"count": len(entries),
			"tlds":  entries,
		}, nil)
	}
}
