package storage

import (
	"hr-agent-go/internal/config"
	"hr-agent-go/internal/logger"
)

// Storage 聚合持久化与缓存两层。MySQL 为硬依赖, Redis 缺席时服务降级为
// 无缓存模式(排名仍可同步计算, 仅丢失会话缓存与分布式锁)。
type Storage struct {
	MySQL *MySQL
	Redis *RedisAdapter
}

func NewStorage(cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	mysqlStore, err := NewMySQL(&cfg.MySQL)
	if err != nil {
		return nil, err
	}
	s.MySQL = mysqlStore
	logger.Info().Str("database", cfg.MySQL.Database).Msg("MySQL存储初始化成功")

	redisStore, err := NewRedisAdapter(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis初始化失败, 排名缓存与互斥锁功能不可用")
	} else {
		s.Redis = redisStore
		logger.Info().Str("address", cfg.Redis.Address).Msg("Redis存储初始化成功")
	}

	return s, nil
}

func (s *Storage) Close() {
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭MySQL连接失败")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
}
