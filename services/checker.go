/*
 * @Date: 2025-06-15 11:12:08
 * @Description: 域名可用性检查服务 - 解析、查询、分类的编排层
 */
package services

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"whoisgate/pkg/logger"
	"whoisgate/pkg/metrics"
	"whoisgate/types"
	"whoisgate/utils"
)

const (
	checkCacheTTL = 7 * 24 * time.Hour

	breakerThreshold = 3
	breakerCooldown  = 2 * time.Minute
)

// ErrCircuitOpen 上游服务器熔断中，查询被快速拒绝
var ErrCircuitOpen = errors.New("circuit breaker open")

// Querier 抽象一次WHOIS查询，QueryClient是生产实现
type Querier interface {
	Query(ctx context.Context, server, query string) (string, error)
}

// CheckOptions 单次检查的可选参数
type CheckOptions struct {
	// ServerOverride 直接指定WHOIS服务器，跳过解析器
	ServerOverride string
	// SkipCache 绕过缓存强制查询上游
	SkipCache bool
}

// Checker 编排 Resolver -> QueryClient -> Classifier，
// 附带结果缓存和按服务器粒度的熔断
type Checker struct {
	resolver   *Resolver
	client     Querier
	classifier *Classifier
	rdb        *redis.Client // 可以为nil（CLI场景无缓存）

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker

	log *zap.SugaredLogger
}

func NewChecker(resolver *Resolver, client Querier, classifier *Classifier, rdb *redis.Client) *Checker {
	return &Checker{
		resolver:   resolver,
		client:     client,
		classifier: classifier,
		rdb:        rdb,
		breakers:   make(map[string]*CircuitBreaker),
		log:        logger.Module("Checker"),
	}
}

// Resolver 暴露底层解析器，注册表枚举等场景使用
func (c *Checker) Resolver() *Resolver {
	return c.resolver
}

// Lookup 执行一次原始WHOIS查询，返回未分类的响应文本
func (c *Checker) Lookup(ctx context.Context, domain string, opts CheckOptions) (*types.LookupResult, error) {
	domain = utils.SanitizeDomain(domain)

	server, err := c.pickServer(domain, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	response, err := c.queryThroughBreaker(ctx, server, c.classifier.QueryText(server, domain))
	if err != nil {
		return nil, err
	}

	return &types.LookupResult{
		Domain:   domain,
		Server:   server,
		Response: response,
		Elapsed:  time.Since(start).Milliseconds(),
	}, nil
}

// Check 执行可用性检查：解析、查询、分类，命中缓存时不触达上游
func (c *Checker) Check(ctx context.Context, domain string, opts CheckOptions) (*types.CheckResult, error) {
	domain = utils.SanitizeDomain(domain)

	cacheKey := checkCacheKey(domain)
	if !opts.SkipCache && opts.ServerOverride == "" {
		if cached, ok := c.cachedResult(ctx, cacheKey); ok {
			metrics.CacheTotal.WithLabelValues("hit").Inc()
			cached.Cached = true
			return cached, nil
		}
		metrics.CacheTotal.WithLabelValues("miss").Inc()
	}

	server, err := c.pickServer(domain, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	response, err := c.queryThroughBreaker(ctx, server, c.classifier.QueryText(server, domain))
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	classification := c.classifier.Classify(server, response, domain)
	metrics.ClassificationsTotal.WithLabelValues(classification.String()).Inc()

	result := &types.CheckResult{
		Domain:    domain,
		Server:    server,
		Status:    classification.String(),
		CheckedAt: time.Now().UTC().Format(time.RFC3339),
		Elapsed:   elapsed.Milliseconds(),
	}

	c.log.Infow("check done",
		"domain", domain, "server", server,
		"status", result.Status, "elapsed", elapsed.Round(time.Millisecond))

	if opts.ServerOverride == "" {
		c.storeResult(ctx, cacheKey, result)
	}

	return result, nil
}

// CheckOne 面向批量场景的单项检查，错误进入条目而不是中断整批
func (c *Checker) CheckOne(ctx context.Context, domain string, opts CheckOptions) types.BatchItem {
	result, err := c.Check(ctx, domain, opts)
	if err != nil {
		return types.BatchItem{Domain: utils.SanitizeDomain(domain), Error: err.Error()}
	}
	return types.BatchItem{
		Domain: result.Domain,
		Server: result.Server,
		Status: result.Status,
		Cached: result.Cached,
	}
}

// CheckAll 按输入顺序逐个检查，逐项隔离错误
func (c *Checker) CheckAll(ctx context.Context, domains []string, opts CheckOptions) []types.BatchItem {
	items := make([]types.BatchItem, len(domains))
	for i, domain := range domains {
		items[i] = c.CheckOne(ctx, domain, opts)
	}
	return items
}

// checkCacheKey 结果缓存键，形如 cache:whois:<domain>
// 前缀必须按段传入，BuildCacheKey会把带冒号的段当成URL归一化
func checkCacheKey(domain string) string {
	return utils.BuildCacheKey("cache", "whois", domain)
}

func (c *Checker) pickServer(domain string, opts CheckOptions) (string, error) {
	if opts.ServerOverride != "" {
		return opts.ServerOverride, nil
	}
	return c.resolver.Resolve(domain)
}

func (c *Checker) queryThroughBreaker(ctx context.Context, server, query string) (string, error) {
	breaker := c.breaker(server)
	if !breaker.Allow() {
		metrics.CircuitOpenTotal.WithLabelValues(server).Inc()
		return "", &types.QueryError{Server: server, Err: ErrCircuitOpen}
	}

	start := time.Now()
	response, err := c.client.Query(ctx, server, query)
	metrics.QueryDuration.WithLabelValues(server).Observe(time.Since(start).Seconds())

	breaker.Record(err == nil)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(server, "error").Inc()
		c.log.Warnw("upstream query failed", "server", server, "err", err)
		return "", err
	}

	metrics.QueriesTotal.WithLabelValues(server, "ok").Inc()
	return response, nil
}

func (c *Checker) breaker(server string) *CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	breaker, ok := c.breakers[server]
	if !ok {
		breaker = NewCircuitBreaker(breakerThreshold, breakerCooldown)
		c.breakers[server] = breaker
	}
	return breaker
}

func (c *Checker) cachedResult(ctx context.Context, key string) (*types.CheckResult, bool) {
	if c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var result types.CheckResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.log.Warnw("bad cache entry dropped", "key", key, "err", err)
		return nil, false
	}
	return &result, true
}

func (c *Checker) storeResult(ctx context.Context, key string, result *types.CheckResult) {
	if c.rdb == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	// TTL加抖动，避免批量写入的key同时过期
	ttl := checkCacheTTL + time.Duration(rand.Int63n(int64(6*time.Hour)))
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		c.log.Warnw("cache write failed", "key", key, "err", err)
	}
}
