/*
 * @Date: 2025-06-15 15:08:40
 * @Description: whoisgate HTTP服务入口
 */
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"whoisgate/middleware"
	"whoisgate/pkg/logger"
	"whoisgate/routes"
	"whoisgate/services"
)

// setupAccessLog 配置gin访问日志：控制台+带切割的文件
func setupAccessLog() *lumberjack.Logger {
	if err := os.MkdirAll("logs", 0755); err != nil {
		logger.Sugar().Warnf("cannot create log directory: %v", err)
		return nil
	}

	logFile := &lumberjack.Logger{
		Filename:   fmt.Sprintf("logs/access_%s.log", time.Now().Format("2006-01-02")),
		MaxSize:    100, // MB
		MaxBackups: 30,
		MaxAge:     90, // 天
		Compress:   true,
		LocalTime:  true,
	}

	gin.DefaultWriter = io.MultiWriter(os.Stdout, logFile)
	return logFile
}

func getPort(defaultPort string) string {
	port := defaultPort
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

// getCorsConfig 从环境变量读取CORS配置
func getCorsConfig() cors.Config {
	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	}

	return cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		// .env是可选的，环境变量直接给也行
		fmt.Fprintln(os.Stderr, "no .env file loaded:", err)
	}

	if err := logger.Init(logger.DeriveEnvironment()); err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Module("Main")

	logFile := setupAccessLog()
	if logFile != nil {
		defer logFile.Close()
	}

	log.Infof("starting whoisgate, version=%s env=%s", os.Getenv("APP_VERSION"), os.Getenv("APP_ENV"))

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	sc := services.NewServiceContainer(rdb, runtime.NumCPU()*2)
	sc.InitializeHealthChecker()

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(cors.New(getCorsConfig()))
	r.Use(middleware.ErrorHandler())

	routes.RegisterAPIRoutes(r, sc)

	port := getPort("8080")
	srv := &http.Server{
		Addr:           port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   90 * time.Second, // 批量检查可能较慢
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 优雅关闭
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server...")

		sc.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("server forced to shut down: %v", err)
		}

		log.Info("server stopped cleanly")
	}()

	log.Infof("listening on %s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}
