package handler

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"hr-agent-go/internal/config"
	"hr-agent-go/internal/constants"
	"hr-agent-go/internal/logger"
	"hr-agent-go/internal/matcher"
	"hr-agent-go/internal/ratelimit"
	"hr-agent-go/internal/storage"
	"hr-agent-go/internal/types"
)

// RankHandler 负责把一批候选人与某个职位批量匹配并按总分排名。
// 排名会话缓存在Redis ZSET中, 同一职位的并发跑批由分布式锁串行化。
type RankHandler struct {
	cfg     *config.Config
	storage *storage.Storage
	engine  *matcher.Engine
	limiter *ratelimit.Limiter
}

func NewRankHandler(cfg *config.Config, storage *storage.Storage, engine *matcher.Engine) *RankHandler {
	h := &RankHandler{cfg: cfg, storage: storage, engine: engine}
	if cfg.Matcher.RankRateQPM > 0 {
		h.limiter = ratelimit.NewLimiter(cfg.Matcher.RankRateQPM, 0)
	}
	return h
}

type rankRequest struct {
	// 为空时对全量候选人跑批
	CandidateIDs []string `json:"candidate_ids"`
}

// HandleRankCandidates 对一个职位执行候选人批量排名。
// POST /api/v1/jobs/:job_id/rank?limit=20&cursor=0
func (h *RankHandler) HandleRankCandidates(ctx context.Context, c *app.RequestContext) {
	// 1. 解析请求参数
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "job_id 不能为空"})
		return
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	cursor, err := strconv.Atoi(c.Query("cursor"))
	if err != nil || cursor < 0 {
		cursor = 0
	}

	var req rankRequest
	_ = c.BindJSON(&req) // 空请求体合法, 视为全量跑批

	// 2. 优先读排名会话缓存
	if h.storage.Redis != nil {
		cached, total, cacheErr := h.storage.Redis.GetCachedRankResults(ctx, jobID, int64(cursor), int64(limit))
		if cacheErr == nil {
			logger.Info().Str("job_id", jobID).Int64("total", total).Msg("排名缓存命中")
			c.JSON(consts.StatusOK, map[string]interface{}{
				"job_id":      jobID,
				"source":      "cache",
				"data":        h.annotate(cached),
				"total_count": total,
				"next_cursor": cursor + len(cached),
			})
			return
		}
		if !errors.Is(cacheErr, storage.ErrCacheMiss) {
			logger.Warn().Err(cacheErr).Str("job_id", jobID).Msg("读取排名缓存失败, 回退到全量计算")
		}
	}

	// 3. 全量计算受进程级限流保护, 缓存命中不占配额
	if h.limiter != nil && !h.limiter.Allow() {
		c.JSON(consts.StatusTooManyRequests, map[string]interface{}{
			"error":       "排名跑批触发过于频繁, 请稍后重试",
			"retry_after": 5,
		})
		return
	}

	// 4. 获取职位级互斥锁, 占用中直接让客户端稍后重试
	var lockToken string
	if h.storage.Redis != nil {
		token, acquired, lockErr := h.storage.Redis.AcquireRankLock(ctx, jobID, constants.DefaultRankLockTTL)
		if lockErr != nil {
			logger.Warn().Err(lockErr).Str("job_id", jobID).Msg("获取排名锁失败, 继续执行可能重复计算")
		} else if !acquired {
			c.JSON(consts.StatusAccepted, map[string]interface{}{
				"message":     "该职位排名正在计算中, 请稍后重试",
				"status":      "processing",
				"job_id":      jobID,
				"retry_after": 2,
			})
			return
		} else {
			lockToken = token
			defer func() {
				if err := h.storage.Redis.ReleaseRankLock(context.WithoutCancel(ctx), jobID, lockToken); err != nil {
					logger.Warn().Err(err).Str("job_id", jobID).Msg("释放排名锁失败")
				}
			}()
		}
	}

	// 5. 装载职位画像(优先读文档缓存)与候选人集合
	jobProfile, err := h.loadJobProfile(ctx, jobID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(consts.StatusNotFound, map[string]string{"error": "职位不存在"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("job_id", jobID).Msg("装载职位画像失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "装载职位画像失败"})
		return
	}

	rows, err := h.storage.MySQL.ListCandidates(ctx, req.CandidateIDs)
	if err != nil {
		logger.Error().Err(err).Str("job_id", jobID).Msg("装载候选人列表失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "装载候选人列表失败"})
		return
	}
	if len(rows) == 0 {
		c.JSON(consts.StatusOK, map[string]interface{}{
			"job_id":      jobID,
			"source":      "computed",
			"data":        []types.RankedCandidate{},
			"total_count": 0,
			"next_cursor": 0,
		})
		return
	}

	// 6. 并发跑批
	started := time.Now()
	ranked := h.rankAll(ctx, jobID, jobProfile, rows)
	logger.Info().
		Str("job_id", jobID).
		Int("candidate_count", len(rows)).
		Int("ranked_count", len(ranked)).
		Dur("elapsed", time.Since(started)).
		Msg("排名计算完成")

	// 7. 写回会话缓存
	if h.storage.Redis != nil && len(ranked) > 0 {
		ttl := time.Duration(h.cfg.Matcher.RankCacheTTLMinutes) * time.Minute
		if ttl <= 0 {
			ttl = constants.DefaultRankCacheTTL
		}
		if err := h.storage.Redis.CacheRankResults(ctx, jobID, ranked, ttl); err != nil {
			logger.Warn().Err(err).Str("job_id", jobID).Msg("写入排名缓存失败")
		}
	}

	// 8. 返回当前页
	end := cursor + limit
	if cursor > len(ranked) {
		cursor = len(ranked)
	}
	if end > len(ranked) {
		end = len(ranked)
	}
	c.JSON(consts.StatusOK, map[string]interface{}{
		"job_id":      jobID,
		"source":      "computed",
		"data":        ranked[cursor:end],
		"total_count": len(ranked),
		"next_cursor": end,
	})
}

// loadJobProfile 优先读Redis职位画像缓存, 未命中回源MySQL并写回缓存
func (h *RankHandler) loadJobProfile(ctx context.Context, jobID string) (*types.JobProfile, error) {
	if h.storage.Redis != nil {
		if cached, err := h.storage.Redis.GetCachedJobProfile(ctx, jobID); err == nil {
			return cached, nil
		}
	}

	profile, err := h.storage.MySQL.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheJobProfile(ctx, jobID, profile, constants.DefaultRankCacheTTL); err != nil {
			logger.Warn().Err(err).Str("job_id", jobID).Msg("写入职位画像缓存失败")
		}
	}
	return profile, nil
}

// rankAll 用固定大小的工作协程池对候选人集合跑匹配。
// 单个候选人匹配失败(输入不完整等)不会中断整批, 只是不进入榜单。
func (h *RankHandler) rankAll(ctx context.Context, jobID string, job *types.JobProfile, rows []storage.CandidateRow) []types.RankedCandidate {
	workers := h.cfg.Matcher.RankWorkers
	if workers <= 0 {
		workers = constants.DefaultRankWorkers
	}
	if workers > len(rows) {
		workers = len(rows)
	}

	jobs := make(chan storage.CandidateRow)
	var mu sync.Mutex
	ranked := make([]types.RankedCandidate, 0, len(rows))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range jobs {
				result, err := h.engine.Match(ctx, row.Profile, job)
				if err != nil {
					logger.Warn().Err(err).
						Str("candidate_id", row.ID).
						Str("job_id", jobID).
						Msg("候选人匹配失败, 不进入榜单")
					continue
				}
				if err := h.storage.MySQL.SaveMatchRecord(ctx, row.ID, jobID, result); err != nil {
					logger.Warn().Err(err).Str("candidate_id", row.ID).Msg("保存匹配记录失败")
				}
				mu.Lock()
				ranked = append(ranked, types.RankedCandidate{
					CandidateID:   row.ID,
					OverallScore:  result.OverallScore,
					MatchCategory: result.MatchCategory,
				})
				mu.Unlock()
			}
		}()
	}

	for _, row := range rows {
		jobs <- row
	}
	close(jobs)
	wg.Wait()

	// 总分降序, 同分按候选人ID升序保证结果可复现
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].OverallScore != ranked[j].OverallScore {
			return ranked[i].OverallScore > ranked[j].OverallScore
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})
	return ranked
}

// annotate 为缓存命中的条目补回匹配档位。缓存只存 (id, score),
// 档位由阈值重算, 与计算路径返回的档位一致。
func (h *RankHandler) annotate(cached []types.RankedCandidate) []types.RankedCandidate {
	for i := range cached {
		cached[i].MatchCategory = matcher.CategoryForScore(cached[i].OverallScore)
	}
	return cached
}
