package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"hr-agent-go/internal/config"
	"hr-agent-go/internal/constants"
	"hr-agent-go/internal/logger"
	"hr-agent-go/internal/types"
)

// ErrCacheMiss 排名缓存未命中。
var ErrCacheMiss = errors.New("storage: rank cache miss")

// releaseLockScript 仅当锁持有者仍是自己时删除, 避免误删他人续期后的锁。
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

// RedisAdapter 封装 go-redis 客户端, 承载排名结果缓存与分布式锁。
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(cfg *config.RedisConfig) (*RedisAdapter, error) {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 20
	}
	minIdle := cfg.MinIdleConns
	if minIdle <= 0 {
		minIdle = 5
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
		DialTimeout:  timeoutOrDefault(cfg.DialTimeoutSeconds, 5*time.Second),
		ReadTimeout:  timeoutOrDefault(cfg.ReadTimeoutSeconds, 3*time.Second),
		WriteTimeout: timeoutOrDefault(cfg.WriteTimeoutSeconds, 3*time.Second),
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Warn().Err(err).Msg("Redis链路追踪注入失败, 继续使用未注入客户端")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &RedisAdapter{client: client}, nil
}

func timeoutOrDefault(seconds int, def time.Duration) time.Duration {
	if seconds <= 0 {
		return def
	}
	return time.Duration(seconds) * time.Second
}

func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisAdapter) Close() error {
	return r.client.Close()
}

// CacheRankResults 把一次排名会话写入 ZSET, member 为候选人ID, score 为总分。
// 旧会话整体替换, 过期时间由调用方指定。
func (r *RedisAdapter) CacheRankResults(ctx context.Context, jobID string, results []types.RankedCandidate, ttl time.Duration) error {
	if len(results) == 0 {
		return nil
	}
	key := fmt.Sprintf(constants.KeyRankSession, jobID)

	members := make([]redis.Z, 0, len(results))
	for _, rc := range results {
		members = append(members, redis.Z{Score: rc.OverallScore, Member: rc.CandidateID})
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.ZAdd(ctx, key, members...)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("缓存排名结果失败: %w", err)
	}
	return nil
}

// GetCachedRankResults 按总分降序分页读取排名会话。
// 返回 (当前页, 会话总数)。会话不存在返回 ErrCacheMiss。
func (r *RedisAdapter) GetCachedRankResults(ctx context.Context, jobID string, offset, limit int64) ([]types.RankedCandidate, int64, error) {
	key := fmt.Sprintf(constants.KeyRankSession, jobID)

	total, err := r.client.ZCard(ctx, key).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("读取排名会话大小失败: %w", err)
	}
	if total == 0 {
		return nil, 0, ErrCacheMiss
	}

	zs, err := r.client.ZRevRangeWithScores(ctx, key, offset, offset+limit-1).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("读取排名会话失败: %w", err)
	}

	results := make([]types.RankedCandidate, 0, len(zs))
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		results = append(results, types.RankedCandidate{
			CandidateID:  id,
			OverallScore: z.Score,
		})
	}
	return results, total, nil
}

// InvalidateRankResults 职位画像更新后使旧排名会话与职位画像缓存失效。
func (r *RedisAdapter) InvalidateRankResults(ctx context.Context, jobID string) error {
	sessionKey := fmt.Sprintf(constants.KeyRankSession, jobID)
	docKey := fmt.Sprintf(constants.KeyJobProfileDoc, jobID)
	return r.client.Del(ctx, sessionKey, docKey).Err()
}

// CacheJobProfile 缓存职位画像JSON文档, 减少跑批路径上的数据库往返。
func (r *RedisAdapter) CacheJobProfile(ctx context.Context, jobID string, profile *types.JobProfile, ttl time.Duration) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("序列化职位画像失败: %w", err)
	}
	key := fmt.Sprintf(constants.KeyJobProfileDoc, jobID)
	return r.client.Set(ctx, key, raw, ttl).Err()
}

// GetCachedJobProfile 读取职位画像缓存。未命中返回 ErrCacheMiss。
func (r *RedisAdapter) GetCachedJobProfile(ctx context.Context, jobID string) (*types.JobProfile, error) {
	key := fmt.Sprintf(constants.KeyJobProfileDoc, jobID)
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("读取职位画像缓存失败: %w", err)
	}

	var profile types.JobProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("反序列化职位画像缓存失败: %w", err)
	}
	return &profile, nil
}

// AcquireRankLock 获取职位级排名互斥锁, 防止同一职位并发重复跑批。
// 成功返回释放令牌; 锁被占用返回 ("", false, nil)。
func (r *RedisAdapter) AcquireRankLock(ctx context.Context, jobID string, ttl time.Duration) (string, bool, error) {
	key := fmt.Sprintf(constants.KeyRankLock, jobID)
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("获取排名锁失败: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// ReleaseRankLock 释放排名锁, 令牌不匹配时静默放弃。
func (r *RedisAdapter) ReleaseRankLock(ctx context.Context, jobID, token string) error {
	key := fmt.Sprintf(constants.KeyRankLock, jobID)
	if err := releaseLockScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
		return fmt.Errorf("释放排名锁失败: %w", err)
	}
	return nil
}
