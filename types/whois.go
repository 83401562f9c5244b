/*
 * @Date: 2025-06-14 21:40:12
 * @Description: WHOIS查询类型定义
 */
package types

import "fmt"

// Classification 域名可用性分类结果
type Classification int

const (
	// ClassUnknown 无法判断（未知服务器或响应不匹配任何规则）
	ClassUnknown Classification = iota
	// ClassFree 域名未注册
	ClassFree
	// ClassTaken 域名已注册
	ClassTaken
)

func (c Classification) String() string {
	switch c {
	case ClassFree:
		return "free"
	case ClassTaken:
		return "taken"
	default:
		return "unknown"
	}
}

// CheckResult 单个域名的可用性检查结果
type CheckResult struct {
	Domain    string `json:"domain"`
	Server    string `json:"server"`
	Status    string `json:"status"` // free / taken / unknown
	Cached    bool   `json:"cached"`
	CheckedAt string `json:"checkedAt,omitempty"`
	Elapsed   int64  `json:"elapsedMs,omitempty"`
}

// LookupResult 原始WHOIS查询结果，不做分类
type LookupResult struct {
	Domain   string `json:"domain"`
	Server   string `json:"server"`
	Response string `json:"response"`
	Elapsed  int64  `json:"elapsedMs,omitempty"`
}

// BatchItem 批量检查中单个域名的条目，错误不会中断整批
type BatchItem struct {
	Domain string `json:"domain"`
	Server string `json:"server,omitempty"`
	Status string `json:"status,omitempty"`
	Cached bool   `json:"cached,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ResolutionError 表示无法为域名后缀找到WHOIS服务器
// 后缀不在注册表中和后缀存在但没有公共服务器都返回这个错误
type ResolutionError struct {
	Suffix string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no whois server known for suffix %q", e.Suffix)
}

// QueryError 表示对某个WHOIS服务器的网络查询失败
type QueryError struct {
	Server string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("whois query to %s failed: %v", e.Server, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
