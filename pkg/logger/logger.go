/*
 * @Date: 2025-06-15 00:12:44
 * @Description: 统一日志系统 - 基于uber-go/zap
 */
package logger

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// base 是全局zap logger实例
	base *zap.Logger
	// sugar 支持printf风格
	sugar *zap.SugaredLogger
)

// ContextKey 用于从context中获取request ID
type ContextKey string

const RequestIDKey ContextKey = "request_id"

// Init 初始化全局logger
// env为"dev"时使用彩色控制台输出，其他情况使用JSON格式
func Init(env string) error {
	var cfg zap.Config

	if env == "dev" || env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.CallerKey = "caller"

	// AddCallerSkip(1) 跳过logger包装层，显示真实调用位置
	l, err := cfg.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	base = l
	sugar = l.Sugar()

	// 重定向标准库log到zap，兼容第三方库的log输出
	stdLog := zap.NewStdLog(l)
	log.SetOutput(stdLog.Writer())
	log.SetFlags(0)

	return nil
}

// InitNop 丢弃所有日志，CLI等不希望日志混进输出的场景使用
func InitNop() {
	base = zap.NewNop()
	sugar = base.Sugar()
	log.SetOutput(io.Discard)
}

// Module 创建带模块名称的logger
// 用法: logger.Module("Checker").Infof("query done: %s", domain)
func Module(name string) *zap.SugaredLogger {
	if sugar == nil {
		return zap.NewExample().Sugar().Named(name)
	}
	return sugar.Named(name)
}

// Base 返回原始zap.Logger，用于需要强类型字段的场景
func Base() *zap.Logger {
	if base == nil {
		return zap.NewExample()
	}
	return base
}

// Sugar 返回SugaredLogger
func Sugar() *zap.SugaredLogger {
	if sugar == nil {
		return zap.NewExample().Sugar()
	}
	return sugar
}

// WithRequest 从Gin context中取request ID并附加到logger字段
func WithRequest(c *gin.Context, moduleName string) *zap.SugaredLogger {
	l := Module(moduleName)

	if requestID, exists := c.Get("request_id"); exists {
		l = l.With("request_id", requestID)
	}
	l = l.With("client_ip", c.ClientIP())

	return l
}

// FromContext 从标准context.Context中获取request ID
func FromContext(ctx context.Context, moduleName string) *zap.SugaredLogger {
	l := Module(moduleName)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		l = l.With("request_id", requestID)
	}

	return l
}

// Sync 刷新日志缓冲区，程序退出前调用
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

// DeriveEnvironment 根据环境变量推导运行环境
func DeriveEnvironment() string {
	if ginMode := os.Getenv("GIN_MODE"); ginMode != "" {
		if ginMode == "release" {
			return "production"
		}
		return "dev"
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}

	return "dev"
}
