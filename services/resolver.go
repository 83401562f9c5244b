/*
 * @Date: 2025-06-14 22:31:40
 * @Description: 域名后缀到WHOIS服务器的解析器
 */
package services

import (
	"strings"

	"whoisgate/registry"
	"whoisgate/types"
	"whoisgate/utils"
)

// Resolver 根据域名后缀在注册表中查找权威WHOIS服务器，无副作用
type Resolver struct {
	reg *registry.Registry
}

func NewResolver(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve 返回负责该域名后缀的WHOIS服务器
// 多级后缀优先（".co.uk"先于".uk"匹配）
// 后缀不在表中或在表中但没有公共服务器都返回ResolutionError
func (r *Resolver) Resolve(domain string) (string, error) {
	domain = utils.SanitizeDomain(domain)

	parts := strings.Split(domain, ".")
	if len(parts) < 2 || parts[len(parts)-1] == "" {
		return "", &types.ResolutionError{Suffix: domain}
	}

	// 从最长的候选后缀往下找，命中即停
	for i := 1; i < len(parts); i++ {
		suffix := "." + strings.Join(parts[i:], ".")
		server, known := r.reg.Lookup(suffix)
		if !known {
			continue
		}
		if server == "" {
			return "", &types.ResolutionError{Suffix: suffix}
		}
		return server, nil
	}

	return "", &types.ResolutionError{Suffix: "." + parts[len(parts)-1]}
}
