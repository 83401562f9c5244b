package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"whoisgate/services"
)

func TestHealthRefreshRunsProbeRound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// 指向本机避免真实外网探测，连接被拒也算完成一轮
	t.Setenv("HEALTH_PROBE_SERVERS", "127.0.0.1")

	hc := services.NewHealthChecker(nil)
	router := gin.New()
	router.GET("/api/health", HealthCheckHandler(hc))

	// 没启动定期检查也没刷新，快照应该是空的
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
	if w.Code != 200 {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "lastCheck") {
		t.Fatal("snapshot should be empty before any probe round")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/health?refresh=true", nil))
	if w.Code != 200 {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "lastCheck") {
		t.Error("refresh=true should run a probe round and populate the snapshot")
	}
}
