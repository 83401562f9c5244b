package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"whoisgate/registry"
	"whoisgate/services"
	"whoisgate/types"
)

// stubQuerier 所有查询都返回"无记录"响应
type stubQuerier struct{}

func (stubQuerier) Query(ctx context.Context, server, query string) (string, error) {
	name := strings.TrimPrefix(query, "domain ")
	return `No match for domain "` + strings.ToUpper(name) + `"`, nil
}

func newTestChecker() *services.Checker {
	reg := registry.New()
	return services.NewChecker(services.NewResolver(reg), stubQuerier{}, services.NewClassifier(), nil)
}

func newBatchRouter(checker *services.Checker, pool *services.WorkerPool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/batch", BatchCheckHandler(checker, pool))
	return router
}

func postBatch(t *testing.T, router *gin.Engine, domains []string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(gin.H{"domains": domains})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestBatchKeepsOrderAndIsolatesErrors(t *testing.T) {
	pool := services.NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	router := newBatchRouter(newTestChecker(), pool)
	w := postBatch(t, router, []string{"foo.com", "bad.zz", "bar.com"})

	if w.Code != 200 {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Results []types.BatchItem `json:"results"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	results := resp.Data.Results
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Domain != "foo.com" || results[0].Error != "" {
		t.Errorf("result 0 = %+v, want success", results[0])
	}
	if results[1].Domain != "bad.zz" || results[1].Error == "" {
		t.Errorf("result 1 = %+v, want error entry", results[1])
	}
	if results[2].Domain != "bar.com" || results[2].Error != "" {
		t.Errorf("result 2 = %+v, want success", results[2])
	}
}

func TestBatchSaturatedPoolReturns503(t *testing.T) {
	pool := services.NewWorkerPool(1)
	pool.Start()
	defer pool.Stop()

	// 占住唯一的worker并填满队列缓冲，让后续提交全部被拒
	block := make(chan struct{})
	defer close(block)

	started := make(chan struct{})
	pool.Submit(func() { close(started); <-block })
	<-started
	for pool.Submit(func() {}) {
	}

	router := newBatchRouter(newTestChecker(), pool)
	w := postBatch(t, router, []string{"foo.com", "bar.com"})

	if w.Code != 503 {
		t.Fatalf("status = %d, want 503 when the pool is saturated", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SERVICE_BUSY") {
		t.Errorf("body = %s, want SERVICE_BUSY error code", w.Body.String())
	}
}

func TestBatchRejectsOversizedRequest(t *testing.T) {
	pool := services.NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	domains := make([]string, 101)
	for i := range domains {
		domains[i] = "example.com"
	}

	router := newBatchRouter(newTestChecker(), pool)
	w := postBatch(t, router, domains)

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "TOO_MANY_DOMAINS") {
		t.Errorf("body = %s, want TOO_MANY_DOMAINS", w.Body.String())
	}
}
