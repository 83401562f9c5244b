package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"whoisgate/registry"
	"whoisgate/types"
)

// stubQuerier 模拟WHOIS查询，按服务器返回预设响应
type stubQuerier struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	queries   []string // 记录发出的查询文本
}

func (s *stubQuerier) Query(ctx context.Context, server, query string) (string, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	if s.err != nil {
		return "", &types.QueryError{Server: server, Err: s.err}
	}
	return s.responses[server], nil
}

func newTestChecker(q Querier) *Checker {
	reg := registry.New()
	return NewChecker(NewResolver(reg), q, NewClassifier(), nil)
}

func TestCheckFreeDomain(t *testing.T) {
	stub := &stubQuerier{responses: map[string]string{
		"whois.verisign-grs.com": `No match for domain "EXAMPLE.COM"`,
	}}
	checker := newTestChecker(stub)

	result, err := checker.Check(context.Background(), "example.com", CheckOptions{})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Status != "free" {
		t.Errorf("status = %q, want free", result.Status)
	}
	if result.Server != "whois.verisign-grs.com" {
		t.Errorf("server = %q", result.Server)
	}

	// Verisign查询应遵循"domain <name>"约定
	if len(stub.queries) != 1 || stub.queries[0] != "domain example.com" {
		t.Errorf("queries = %v, want [domain example.com]", stub.queries)
	}
}

func TestCheckTakenDomain(t *testing.T) {
	stub := &stubQuerier{responses: map[string]string{
		"whois.verisign-grs.com": "Registrar: Example Registrar Inc.",
	}}
	checker := newTestChecker(stub)

	result, err := checker.Check(context.Background(), "example.com", CheckOptions{})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if result.Status != "taken" {
		t.Errorf("status = %q, want taken", result.Status)
	}
}

func TestCheckUnknownSuffix(t *testing.T) {
	checker := newTestChecker(&stubQuerier{})

	_, err := checker.Check(context.Background(), "example.zz", CheckOptions{})
	var resErr *types.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("error = %v, want *types.ResolutionError", err)
	}
}

func TestCheckServerOverrideSkipsResolver(t *testing.T) {
	stub := &stubQuerier{responses: map[string]string{
		"whois.example.test": "whatever",
	}}
	checker := newTestChecker(stub)

	// .zz解析不了，但指定服务器后必须能查
	result, err := checker.Check(context.Background(), "example.zz", CheckOptions{ServerOverride: "whois.example.test"})
	if err != nil {
		t.Fatalf("Check with override error: %v", err)
	}
	if result.Server != "whois.example.test" {
		t.Errorf("server = %q, want override", result.Server)
	}
	// 未知服务器没有规则，结果必须是unknown而不是报错
	if result.Status != "unknown" {
		t.Errorf("status = %q, want unknown", result.Status)
	}
}

func TestCheckQueryErrorPropagates(t *testing.T) {
	stub := &stubQuerier{err: errors.New("connection refused")}
	checker := newTestChecker(stub)

	_, err := checker.Check(context.Background(), "example.com", CheckOptions{})
	var qErr *types.QueryError
	if !errors.As(err, &qErr) {
		t.Fatalf("error = %v, want *types.QueryError", err)
	}
}

func TestCheckCircuitBreakerOpens(t *testing.T) {
	stub := &stubQuerier{err: errors.New("connection refused")}
	checker := newTestChecker(stub)

	// 连续失败到阈值后熔断器打开
	for i := 0; i < breakerThreshold; i++ {
		checker.Check(context.Background(), "example.com", CheckOptions{})
	}

	_, err := checker.Check(context.Background(), "example.com", CheckOptions{})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("error = %v, want ErrCircuitOpen", err)
	}

	// 熔断打开后不再触达上游
	queriesBefore := len(stub.queries)
	checker.Check(context.Background(), "example.com", CheckOptions{})
	if len(stub.queries) != queriesBefore {
		t.Error("open breaker should short-circuit upstream queries")
	}
}

func TestCheckAllKeepsOrderAndIsolatesErrors(t *testing.T) {
	stub := &stubQuerier{responses: map[string]string{
		"whois.verisign-grs.com": `No match for domain "FOO.COM"`,
	}}
	checker := newTestChecker(stub)

	items := checker.CheckAll(context.Background(), []string{"foo.com", "bad.zz", "foo.com"}, CheckOptions{})
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	if items[0].Domain != "foo.com" || items[0].Error != "" {
		t.Errorf("item 0 = %+v, want success", items[0])
	}
	if items[1].Domain != "bad.zz" || items[1].Error == "" {
		t.Errorf("item 1 = %+v, want error entry", items[1])
	}
	if items[2].Error != "" {
		t.Errorf("item 2 = %+v, error must not leak into later items", items[2])
	}
}

func TestCheckCacheKeyKeepsNamespace(t *testing.T) {
	// 前缀整串传入会被键构造器当成URL截掉冒号后的部分，必须分段拼
	if got := checkCacheKey("example.com"); got != "cache:whois:example.com" {
		t.Errorf("checkCacheKey = %q, want cache:whois:example.com", got)
	}
}

func TestCheckConcurrentSafety(t *testing.T) {
	stub := &stubQuerier{responses: map[string]string{
		"whois.verisign-grs.com": "Registrar: X",
	}}
	checker := newTestChecker(stub)

	const goroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if _, err := checker.Check(context.Background(), "example.com", CheckOptions{}); err != nil {
					t.Errorf("concurrent Check error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
