/*
 * @Date: 2025-06-14 22:05:18
 * @Description: 域名工具函数
 */
package utils

import (
	"regexp"
	"strings"
)

var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// SanitizeDomain 清理并标准化域名：去掉协议前缀、端口、路径，转小写
func SanitizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(strings.TrimPrefix(domain, "http://"), "https://")

	if idx := strings.IndexAny(domain, ":/"); idx != -1 {
		domain = domain[:idx]
	}

	return strings.ToLower(strings.TrimSuffix(domain, "."))
}

// IsValidDomain 验证域名格式是否有效，验证前先做SanitizeDomain同样的清理
func IsValidDomain(domain string) bool {
	return domainRegex.MatchString(SanitizeDomain(domain))
}
