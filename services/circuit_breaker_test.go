package services

import (
	"testing"
	"time"
)

func TestBreakerOpensAtThreshold(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !cb.Allow() {
			t.Fatalf("breaker should be closed before threshold, failure %d", i)
		}
		cb.Record(false)
	}

	if cb.State() != StateOpen {
		t.Fatalf("state = %v, want open", cb.State())
	}
	if cb.Allow() {
		t.Error("open breaker should reject requests")
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)

	cb.Record(false)
	if cb.State() != StateOpen {
		t.Fatal("breaker should open after one failure with threshold 1")
	}

	time.Sleep(20 * time.Millisecond)

	// 冷却期过后放行一次探测
	if !cb.Allow() {
		t.Fatal("breaker should allow a probe after cooldown")
	}
	if cb.State() != StateHalfOpen {
		t.Fatalf("state = %v, want half-open", cb.State())
	}

	// 探测成功恢复到关闭
	cb.Record(true)
	if cb.State() != StateClosed {
		t.Fatalf("state = %v, want closed after successful probe", cb.State())
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)

	cb.Record(false)
	time.Sleep(20 * time.Millisecond)
	cb.Allow()
	cb.Record(false)

	if cb.State() != StateOpen {
		t.Fatalf("state = %v, want open after failed probe", cb.State())
	}
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute)

	cb.Record(false)
	cb.Record(false)
	cb.Record(true)
	cb.Record(false)
	cb.Record(false)

	// 成功清零计数，两次失败不够阈值
	if cb.State() != StateClosed {
		t.Fatalf("state = %v, want closed", cb.State())
	}
}
