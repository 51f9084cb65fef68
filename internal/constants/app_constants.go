package constants

import "time"

const (
	// ScoringVersion 当前评分算法版本，写入匹配结果与落库记录
	ScoringVersion = "1.0"

	// DefaultRankCacheTTL 批量排序结果缓存默认过期时间
	DefaultRankCacheTTL = 30 * time.Minute
	// DefaultRankLockTTL 批量排序分布式锁默认持有时间
	DefaultRankLockTTL = 5 * time.Minute
	// DefaultRankWorkers 批量排序默认并发工作协程数
	DefaultRankWorkers = 8
)
