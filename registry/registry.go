/*
 * @Date: 2025-06-14 21:52:30
 * @Description: TLD到WHOIS服务器的不可变注册表
 */
package registry

import (
	"sort"
	"strings"
)

// Registry 保存后缀到WHOIS服务器的映射，构建后只读
// 空字符串的服务器值表示"已知后缀但没有公共WHOIS服务器"，
// 与"后缀不在表中"是两种不同的情况
type Registry struct {
	servers map[string]string
}

// New 基于内置默认表构建注册表，可选的overlay条目会覆盖或补充默认表
// key统一为带前导点的小写后缀（".com"、".co.uk"）
func New(overlays ...map[string]string) *Registry {
	servers := make(map[string]string, len(defaultServers))
	for suffix, server := range defaultServers {
		servers[normalizeSuffix(suffix)] = server
	}
	for _, overlay := range overlays {
		for suffix, server := range overlay {
			servers[normalizeSuffix(suffix)] = server
		}
	}
	return &Registry{servers: servers}
}

// Lookup 查询后缀对应的WHOIS服务器
// known为true且server为空表示已知后缀但没有公共服务器
func (r *Registry) Lookup(suffix string) (server string, known bool) {
	server, known = r.servers[normalizeSuffix(suffix)]
	return server, known
}

// Suffixes 返回排序后的全部已知后缀
func (r *Registry) Suffixes() []string {
	suffixes := make([]string, 0, len(r.servers))
	for suffix := range r.servers {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// Len 返回注册表条目数
func (r *Registry) Len() int {
	return len(r.servers)
}

func normalizeSuffix(suffix string) string {
	suffix = strings.ToLower(strings.TrimSpace(suffix))
	if suffix != "" && !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return suffix
}
