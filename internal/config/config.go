package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hr-agent-go/internal/matcher"

	"gopkg.in/yaml.v3"
)

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080" 或 "0.0.0.0:8080"
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// MySQLConfig MySQL配置
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// 连接池设置
	MaxIdleConns int `yaml:"max_idle_conns"` // 最大空闲连接数
	MaxOpenConns int `yaml:"max_open_conns"` // 最大打开连接数
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"` // 连接最大生命周期(分钟)
	// 日志设置
	LogLevel int `yaml:"log_level"` // GORM日志级别(1-4)
}

// DSN 拼接GORM使用的MySQL连接串
func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
}

// TracingConfig OpenTelemetry链路追踪配置
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"` // OTLP gRPC收集器地址，例如 "localhost:4317"
	ServiceName  string  `yaml:"service_name"`
	SampleRatio  float64 `yaml:"sample_ratio"` // 采样比例, (0,1]
}

// AuthConfig API鉴权配置
type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	APIKeys []string `yaml:"api_keys"` // 允许访问的API Key列表
}

// MatcherConfig 匹配引擎相关配置
type MatcherConfig struct {
	// Weights 聚合权重覆盖。不配置时使用引擎默认权重；
	// 配置了则必须总和为1.0，引擎初始化时校验。
	Weights *matcher.Weights `yaml:"weights,omitempty"`
	// RankWorkers 批量排序的并发工作协程数
	RankWorkers int `yaml:"rank_workers"`
	// RankCacheTTLMinutes 批量排序结果缓存过期时间(分钟)
	RankCacheTTLMinutes int `yaml:"rank_cache_ttl_minutes"`
	// RankRateQPM 每分钟允许触发的排名跑批次数，0表示不限流
	RankRateQPM int `yaml:"rank_rate_qpm"`
}

// Config 应用程序配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logger  LoggerConfig  `yaml:"logger"`
	MySQL   MySQLConfig   `yaml:"mysql"`
	Redis   RedisConfig   `yaml:"redis"`
	Tracing TracingConfig `yaml:"tracing"`
	Auth    AuthConfig    `yaml:"auth"`
	Matcher MatcherConfig `yaml:"matcher"`
}

// EngineConfig 基于默认表生成引擎配置，只有权重允许从文件覆盖。
// 关键词表等启发式表固定走引擎默认值，测试中可以直接构造matcher.Config替换。
func (c *Config) EngineConfig() *matcher.Config {
	engineCfg := matcher.DefaultConfig()
	if c.Matcher.Weights != nil {
		engineCfg.Weights = *c.Matcher.Weights
	}
	return engineCfg
}

// LoadConfig 从文件加载配置。
// path为空时在常见位置查找；找不到文件时返回带默认值的配置而不是报错，
// 便于本地起服务和测试环境。
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"internal/config/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".hr-agent", "config.yaml"),
		}

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		if configPath == "" {
			return withDefaults(&Config{}), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 敏感项允许从环境变量覆盖
	if envPwd := os.Getenv("MYSQL_PASSWORD"); envPwd != "" {
		cfg.MySQL.Password = envPwd
	}
	if envPwd := os.Getenv("REDIS_PASSWORD"); envPwd != "" {
		cfg.Redis.Password = envPwd
	}
	if envKeys := os.Getenv("API_KEYS"); envKeys != "" {
		cfg.Auth.APIKeys = strings.Split(envKeys, ",")
	}

	return withDefaults(&cfg), nil
}

// withDefaults 填充缺省值
func withDefaults(cfg *Config) *Config {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "json"
	}
	if cfg.Matcher.RankWorkers <= 0 {
		cfg.Matcher.RankWorkers = 8
	}
	if cfg.Matcher.RankCacheTTLMinutes <= 0 {
		cfg.Matcher.RankCacheTTLMinutes = 30
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "hr-agent-go"
	}
	if cfg.Tracing.SampleRatio <= 0 || cfg.Tracing.SampleRatio > 1 {
		cfg.Tracing.SampleRatio = 1.0
	}
	return cfg
}
