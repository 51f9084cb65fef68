package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// Logger 全局日志实例，应用内其他包直接使用
	Logger = log.Logger
)

// Config 日志配置
type Config struct {
	Level        string `json:"level" yaml:"level"`                 // 日志级别: debug, info, warn, error
	Format       string `json:"format" yaml:"format"`               // 输出格式: json 或 pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`     // 时间戳格式
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"` // 是否记录调用位置(文件:行号)
}

// Init 按配置初始化全局日志实例
func Init(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel // 无法解析时退回Info级别
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stdout
	if cfg.Format == "pretty" {
		// 控制台友好格式，开发环境使用
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: cfg.TimeFormat,
			NoColor:    false,
		}
	}

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	ctxLogger := zerolog.New(output).
		Level(level).
		With().
		Timestamp()

	if cfg.ReportCaller {
		ctxLogger = ctxLogger.Caller()
	}

	// 同时替换本包和zerolog库的全局logger，保证两条路径输出一致
	Logger = ctxLogger.Logger()
	log.Logger = Logger
}

// Debug 开始一条debug级别日志
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info 开始一条info级别日志
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn 开始一条warn级别日志
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error 开始一条error级别日志
func Error() *zerolog.Event {
	return Logger.Error()
}

// Fatal 开始一条fatal级别日志，记录后进程退出
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}

// Ctx 从上下文中取出logger（不存在时返回禁用的logger）
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext 把全局logger注入上下文
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
