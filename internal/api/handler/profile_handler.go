package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"hr-agent-go/internal/config"
	"hr-agent-go/internal/logger"
	"hr-agent-go/internal/storage"
	"hr-agent-go/internal/types"
)

// ProfileHandler 负责候选人档案与职位画像的录入和查询。
type ProfileHandler struct {
	cfg     *config.Config
	storage *storage.Storage
}

func NewProfileHandler(cfg *config.Config, storage *storage.Storage) *ProfileHandler {
	return &ProfileHandler{cfg: cfg, storage: storage}
}

// HandleCreateCandidate 录入(或按ID覆盖)候选人档案。
// POST /api/v1/candidates
func (h *ProfileHandler) HandleCreateCandidate(ctx context.Context, c *app.RequestContext) {
	var req struct {
		CandidateID string                  `json:"candidate_id"`
		Profile     *types.CandidateProfile `json:"profile"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体解析失败: " + err.Error()})
		return
	}
	if req.Profile == nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "profile 不能为空"})
		return
	}
	if missing := req.Profile.MissingFields(); len(missing) > 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{
			"error":          "候选人档案缺少必需字段",
			"missing_fields": missing,
		})
		return
	}

	id, err := h.storage.MySQL.SaveCandidate(ctx, req.CandidateID, req.Profile)
	if err != nil {
		logger.Error().Err(err).Msg("保存候选人档案失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "保存候选人档案失败"})
		return
	}

	logger.Info().Str("candidate_id", id).Msg("候选人档案已保存")
	c.JSON(consts.StatusCreated, map[string]string{"candidate_id": id})
}

// HandleGetCandidate 查询候选人档案。
// GET /api/v1/candidates/:candidate_id
func (h *ProfileHandler) HandleGetCandidate(ctx context.Context, c *app.RequestContext) {
	id := c.Param("candidate_id")
	if id == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "candidate_id 不能为空"})
		return
	}

	profile, err := h.storage.MySQL.GetCandidate(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(consts.StatusNotFound, map[string]string{"error": "候选人不存在"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("candidate_id", id).Msg("查询候选人档案失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询候选人档案失败"})
		return
	}

	c.JSON(consts.StatusOK, map[string]interface{}{
		"candidate_id": id,
		"profile":      profile,
	})
}

// HandleCreateJob 录入(或按ID覆盖)职位画像。画像在入库前统一做技能小写归一,
// 覆盖旧画像时同步作废该职位的排名缓存。
// POST /api/v1/jobs
func (h *ProfileHandler) HandleCreateJob(ctx context.Context, c *app.RequestContext) {
	var req struct {
		JobID   string            `json:"job_id"`
		Profile *types.JobProfile `json:"profile"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求体解析失败: " + err.Error()})
		return
	}
	if req.Profile == nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "profile 不能为空"})
		return
	}
	if missing := req.Profile.MissingFields(); len(missing) > 0 {
		c.JSON(consts.StatusBadRequest, map[string]interface{}{
			"error":          "职位画像缺少必需字段",
			"missing_fields": missing,
		})
		return
	}

	req.Profile.Normalize()

	id, err := h.storage.MySQL.SaveJob(ctx, req.JobID, req.Profile)
	if err != nil {
		logger.Error().Err(err).Msg("保存职位画像失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "保存职位画像失败"})
		return
	}

	if req.JobID != "" && h.storage.Redis != nil {
		if err := h.storage.Redis.InvalidateRankResults(ctx, id); err != nil {
			logger.Warn().Err(err).Str("job_id", id).Msg("作废排名缓存失败")
		}
	}

	logger.Info().Str("job_id", id).Str("title", req.Profile.Title).Msg("职位画像已保存")
	c.JSON(consts.StatusCreated, map[string]string{"job_id": id})
}

// HandleGetJob 查询职位画像。
// GET /api/v1/jobs/:job_id
func (h *ProfileHandler) HandleGetJob(ctx context.Context, c *app.RequestContext) {
	id := c.Param("job_id")
	if id == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "job_id 不能为空"})
		return
	}

	profile, err := h.storage.MySQL.GetJob(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(consts.StatusNotFound, map[string]string{"error": "职位不存在"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("job_id", id).Msg("查询职位画像失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "查询职位画像失败"})
		return
	}

	c.JSON(consts.StatusOK, map[string]interface{}{
		"job_id":  id,
		"profile": profile,
	})
}
