/*
 * @Date: 2025-06-15 00:31:02
 * @Description: Prometheus指标定义
 */
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()
	factory  = promauto.With(registry)

	// QueriesTotal 按服务器和结果统计的上游WHOIS查询数
	QueriesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "whoisgate",
		Name:      "whois_queries_total",
		Help:      "Upstream WHOIS queries by server and outcome.",
	}, []string{"server", "outcome"})

	// QueryDuration 上游查询耗时分布
	QueryDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "whoisgate",
		Name:      "whois_query_duration_seconds",
		Help:      "Latency of upstream WHOIS queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"server"})

	// ClassificationsTotal 按分类结果统计
	ClassificationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "whoisgate",
		Name:      "classifications_total",
		Help:      "Availability classifications by result.",
	}, []string{"result"})

	// CacheTotal 缓存命中/未命中统计
	CacheTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "whoisgate",
		Name:      "cache_requests_total",
		Help:      "Cache lookups by result (hit/miss).",
	}, []string{"result"})

	// CircuitOpenTotal 熔断器拒绝的查询数
	CircuitOpenTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "whoisgate",
		Name:      "circuit_open_total",
		Help:      "Queries rejected by an open circuit breaker.",
	}, []string{"server"})
)

// Handler 返回/metrics端点的HTTP处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
