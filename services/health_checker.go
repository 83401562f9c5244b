/*
 * @Date: 2025-06-15 11:40:52
 * @Description: 上游WHOIS服务器与Redis的定期健康检查
 */
package services

import (
	"context"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"whoisgate/pkg/logger"
)

const (
	defaultProbeInterval = 6 * time.Hour
	probeDialTimeout     = 5 * time.Second
)

// defaultProbeServers 默认探测的上游服务器集合，可用HEALTH_PROBE_SERVERS覆盖
var defaultProbeServers = []string{
	"whois.verisign-grs.com",
	"whois.pir.org",
	"whois.nic.io",
}

// HealthChecker 周期性探测上游WHOIS服务器的TCP可达性和Redis连通性，
// 结果缓存在内存里供健康检查接口读取
type HealthChecker struct {
	rdb      *redis.Client
	interval time.Duration
	servers  []string

	stopChan chan struct{}
	stopOnce sync.Once

	mu        sync.RWMutex
	last      map[string]interface{}
	lastCheck time.Time

	log *zap.SugaredLogger
}

func NewHealthChecker(rdb *redis.Client) *HealthChecker {
	servers := defaultProbeServers
	if env := os.Getenv("HEALTH_PROBE_SERVERS"); env != "" {
		servers = nil
		for _, s := range strings.Split(env, ",") {
			if s = strings.TrimSpace(s); s != "" {
				servers = append(servers, s)
			}
		}
	}

	interval := defaultProbeInterval
	if env := os.Getenv("HEALTH_CHECK_INTERVAL"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			interval = d
		}
	}

	return &HealthChecker{
		rdb:      rdb,
		interval: interval,
		servers:  servers,
		stopChan: make(chan struct{}),
		last:     make(map[string]interface{}),
		log:      logger.Module("Health"),
	}
}

// Start 启动定期检查，先立即执行一轮
func (hc *HealthChecker) Start() {
	hc.log.Infof("health checker started, interval=%v, servers=%v", hc.interval, hc.servers)
	hc.RunHealthCheck()

	go func() {
		ticker := time.NewTicker(hc.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hc.RunHealthCheck()
			case <-hc.stopChan:
				hc.log.Info("health checker stopped")
				return
			}
		}
	}()
}

// Stop 停止定期检查
func (hc *HealthChecker) Stop() {
	hc.stopOnce.Do(func() { close(hc.stopChan) })
}

// ForceRefresh 立刻执行一轮检查
func (hc *HealthChecker) ForceRefresh() {
	hc.RunHealthCheck()
}

// RunHealthCheck 执行一轮完整检查并更新缓存快照
func (hc *HealthChecker) RunHealthCheck() {
	results := make(map[string]interface{})

	upstream := make(map[string]interface{}, len(hc.servers))
	upstreamStatus := "up"
	for _, server := range hc.servers {
		start := time.Now()
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(server, whoisPort), probeDialTimeout)
		latency := time.Since(start)

		entry := map[string]interface{}{
			"latencyMs": latency.Milliseconds(),
			"status":    "up",
		}
		if err != nil {
			entry["status"] = "down"
			entry["error"] = err.Error()
			upstreamStatus = "degraded"
			hc.log.Warnw("whois server unreachable", "server", server, "err", err)
		} else {
			conn.Close()
		}
		upstream[server] = entry
	}
	results["whois"] = map[string]interface{}{
		"status":  upstreamStatus,
		"servers": upstream,
	}

	if hc.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), probeDialTimeout)
		redisEntry := map[string]interface{}{"status": "up"}
		if err := hc.rdb.Ping(ctx).Err(); err != nil {
			redisEntry["status"] = "down"
			redisEntry["error"] = err.Error()
		}
		cancel()
		results["redis"] = redisEntry
	}

	hc.mu.Lock()
	hc.last = results
	hc.lastCheck = time.Now()
	hc.mu.Unlock()
}

// GetHealthStatus 返回最近一轮检查的快照
func (hc *HealthChecker) GetHealthStatus() map[string]interface{} {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	snapshot := make(map[string]interface{}, len(hc.last)+1)
	for k, v := range hc.last {
		snapshot[k] = v
	}
	if !hc.lastCheck.IsZero() {
		snapshot["lastCheck"] = hc.lastCheck.UTC().Format(time.RFC3339)
	}
	return snapshot
}
