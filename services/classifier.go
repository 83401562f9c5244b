/*
 * @Date: 2025-06-14 23:02:17
 * @Description: WHOIS响应的可用性分类器
 */
package services

import (
	"strings"
	"sync"

	"whoisgate/types"
)

// Matcher 对一条WHOIS响应做分类，必须对任意输入返回结果且不报错
type Matcher func(response, domain string) types.Classification

// Rule 描述某个WHOIS服务器的查询约定和响应匹配方式
type Rule struct {
	// Server 规则对应的WHOIS服务器主机名
	Server string
	// BuildQuery 构造发送给该服务器的查询文本，nil表示直接发送域名
	BuildQuery func(domain string) string
	// Match 响应分类函数
	Match Matcher
}

// Classifier 按服务器主机名组织的开放规则表
// 未知服务器或不匹配任何模式的响应一律归为Unknown，分类对所有输入都是全函数
type Classifier struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewClassifier 创建分类器并注册内置规则
func NewClassifier() *Classifier {
	cl := &Classifier{rules: make(map[string]Rule)}

	// Verisign（.com/.net）：厚注册局查询约定为"domain <name>"
	cl.Register(Rule{
		Server: "whois.verisign-grs.com",
		BuildQuery: func(domain string) string {
			return "domain " + domain
		},
		Match: func(response, domain string) types.Classification {
			if strings.Contains(response, `No match for domain "`+strings.ToUpper(domain)+`"`) {
				return types.ClassFree
			}
			if strings.Contains(response, "Registrar:") {
				return types.ClassTaken
			}
			return types.ClassUnknown
		},
	})

	return cl
}

// Register 添加或替换某个服务器的规则，扩展新注册局无需改动分类算法
func (cl *Classifier) Register(rule Rule) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.rules[strings.ToLower(rule.Server)] = rule
}

// QueryText 返回发往该服务器的查询文本
func (cl *Classifier) QueryText(server, domain string) string {
	cl.mu.RLock()
	rule, ok := cl.rules[strings.ToLower(server)]
	cl.mu.RUnlock()

	if ok && rule.BuildQuery != nil {
		return rule.BuildQuery(domain)
	}
	return domain
}

// Classify 对(server, response, domain)三元组做分类
// 纯函数：相同输入永远得到相同结果
func (cl *Classifier) Classify(server, response, domain string) types.Classification {
	cl.mu.RLock()
	rule, ok := cl.rules[strings.ToLower(server)]
	cl.mu.RUnlock()

	if !ok || rule.Match == nil {
		return types.ClassUnknown
	}
	return rule.Match(response, domain)
}
