/*
 * @Date: 2025-06-15 10:20:33
 * @Description: 按上游WHOIS服务器粒度的熔断器
 */
package services

import (
	"sync"
	"time"
)

// CircuitState 熔断器状态
type CircuitState int

const (
	StateClosed   CircuitState = iota // 正常放行
	StateOpen                         // 熔断生效，快速失败
	StateHalfOpen                     // 尝试恢复
)

func (s CircuitState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreaker 连续失败达到阈值后打开，冷却期后半开放行一次探测
type CircuitBreaker struct {
	mu               sync.Mutex
	state            CircuitState
	failures         int
	failureThreshold int
	resetTimeout     time.Duration
	lastFailure      time.Time
}

func NewCircuitBreaker(failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
	}
}

// Allow 判断是否放行本次请求
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if time.Since(cb.lastFailure) > cb.resetTimeout {
			cb.state = StateHalfOpen
			return true
		}
		return false
	default:
		// closed和half-open都放行，half-open靠Record的结果决定去向
		return true
	}
}

// Record 记录请求结果并推进状态机
func (cb *CircuitBreaker) Record(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if success {
		cb.state = StateClosed
		cb.failures = 0
		return
	}

	cb.lastFailure = time.Now()
	switch cb.state {
	case StateHalfOpen:
		// 探测失败，立即回到打开状态
		cb.state = StateOpen
	default:
		cb.failures++
		if cb.failures >= cb.failureThreshold {
			cb.state = StateOpen
		}
	}
}

// State 返回当前状态
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
