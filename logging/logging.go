// Package logging 基于 zap 的 logr 日志后端。
// 各组件通过 logr.Logger 记录方程构建和参数信息，调试信息使用 V(DEBUG)。
package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 日志详细级别
const (
	INFO  = 0 // 常规信息
	DEBUG = 1 // 方程与求解细节
)

// timeLayout 控制台时间格式 日/月/年 时:分:秒
const timeLayout = "02/01/2006 15:04:05"

// Options 日志配置
type Options struct {
	Level string // debug, info, warn, error
	File  string // 额外写入的日志文件，空则只输出到控制台
	Color bool   // 控制台按级别着色
}

// New 创建日志，返回的 sync 函数用于退出前刷新缓冲
func New(opts Options) (logr.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(opts.Level); err != nil {
			return logr.Discard(), nil, fmt.Errorf("日志级别无效 %q: %w", opts.Level, err)
		}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Color {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if opts.File != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, opts.File)
	}
	z, err := cfg.Build()
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("日志初始化失败: %w", err)
	}
	return zapr.NewLogger(z), z.Sync, nil
}

// NewTestLogger 测试使用的调试级别日志
func NewTestLogger() logr.Logger {
	z, err := zap.NewDevelopment()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(z)
}
