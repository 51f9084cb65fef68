package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"hr-agent-go/internal/config"
	"hr-agent-go/internal/logger"
	"hr-agent-go/internal/matcher"
	"hr-agent-go/internal/storage"
	"hr-agent-go/internal/types"
)

// MatchHandler 负责单次候选人-职位匹配请求。
// 档案可以内联提交, 也可以引用已入库的ID, 两侧各自二选一。
type MatchHandler struct {
	cfg     *config.Config
	storage *storage.Storage
	engine  *matcher.Engine
}

func NewMatchHandler(cfg *config.Config, storage *storage.Storage, engine *matcher.Engine) *MatchHandler {
	return &MatchHandler{cfg: cfg, storage: storage, engine: engine}
}

type matchRequest struct {
	CandidateID string                  `json:"candidate_id"`
	JobID       string                  `json:"job_id"`
	Candidate   *types.CandidateProfile `json:"candidate"`
	Job         *types.JobProfile       `json:"job"`
}

// HandleMatch 执行一次完整匹配并返回评分报告。
// POST /api/v1/match
func (h *MatchHandler) HandleMatch(ctx context.Context, c *app.RequestContext) {
	var req matchRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体解析失败: " + err.Error()})
		return
	}

	// 1. 装载两侧档案
	candidate, jobProfile, errMsg, status := h.resolveProfiles(ctx, &req)
	if errMsg != "" {
		c.JSON(status, map[string]string{"error": errMsg})
		return
	}

	// 内联提交的职位画像尚未归一化
	if req.Job != nil {
		jobProfile.Normalize()
	}

	// 2. 执行匹配
	result, err := h.engine.Match(ctx, candidate, jobProfile)
	if errors.Is(err, matcher.ErrInvalidInput) {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("匹配计算失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "匹配计算失败"})
		return
	}

	// 3. 两侧均为入库档案时落库匹配记录, 失败只记日志不影响响应
	if req.CandidateID != "" && req.JobID != "" {
		if err := h.storage.MySQL.SaveMatchRecord(ctx, req.CandidateID, req.JobID, result); err != nil {
			logger.Warn().Err(err).
				Str("candidate_id", req.CandidateID).
				Str("job_id", req.JobID).
				Msg("保存匹配记录失败")
		}
	}

	c.JSON(consts.StatusOK, result)
}

// resolveProfiles 按 "内联优先, 其次按ID查库" 装载候选人与职位档案。
func (h *MatchHandler) resolveProfiles(ctx context.Context, req *matchRequest) (*types.CandidateProfile, *types.JobProfile, string, int) {
	candidate := req.Candidate
	if candidate == nil {
		if req.CandidateID == "" {
			return nil, nil, "candidate 与 candidate_id 必须提供其一", consts.StatusBadRequest
		}
		loaded, err := h.storage.MySQL.GetCandidate(ctx, req.CandidateID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, "候选人不存在: " + req.CandidateID, consts.StatusNotFound
		}
		if err != nil {
			logger.Error().Err(err).Str("candidate_id", req.CandidateID).Msg("装载候选人档案失败")
			return nil, nil, "装载候选人档案失败", consts.StatusInternalServerError
		}
		candidate = loaded
	}

	jobProfile := req.Job
	if jobProfile == nil {
		if req.JobID == "" {
			return nil, nil, "job 与 job_id 必须提供其一", consts.StatusBadRequest
		}
		loaded, err := h.storage.MySQL.GetJob(ctx, req.JobID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, "职位不存在: " + req.JobID, consts.StatusNotFound
		}
		if err != nil {
			logger.Error().Err(err).Str("job_id", req.JobID).Msg("装载职位画像失败")
			return nil, nil, "装载职位画像失败", consts.StatusInternalServerError
		}
		jobProfile = loaded
	}

	return candidate, jobProfile, "", 0
}
