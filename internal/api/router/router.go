package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"hr-agent-go/internal/api/handler"
	"hr-agent-go/internal/config"
	"hr-agent-go/internal/constants"
)

// RegisterRoutes 注册 API 路由。
// auth.enabled 开启时, /api/v1 下除健康检查外的所有路由要求 X-API-Key。
func RegisterRoutes(
	h *server.Hertz,
	cfg *config.Config,
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	rankHandler *handler.RankHandler,
) {
	api := h.Group("/api/v1")

	// 健康检查不走鉴权
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{
			"status":  "ok",
			"version": constants.ScoringVersion,
		})
	})

	protected := api.Group("")
	if cfg.Auth.Enabled {
		protected.Use(apiKeyMiddleware(cfg.Auth.APIKeys))
	}

	protected.POST("/candidates", profileHandler.HandleCreateCandidate)
	protected.GET("/candidates/:candidate_id", profileHandler.HandleGetCandidate)
	protected.POST("/jobs", profileHandler.HandleCreateJob)
	protected.GET("/jobs/:job_id", profileHandler.HandleGetJob)

	protected.POST("/match", matchHandler.HandleMatch)
	protected.POST("/jobs/:job_id/rank", rankHandler.HandleRankCandidates)
}

func apiKeyMiddleware(keys []string) app.HandlerFunc {
	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		allowed[k] = struct{}{}
	}

	return keyauth.New(
		keyauth.WithKeyLookUp("header:X-API-Key", ""),
		keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
			_, ok := allowed[key]
			return ok, nil
		}),
		keyauth.WithErrorHandler(func(ctx context.Context, c *app.RequestContext, err error) {
			c.JSON(consts.StatusUnauthorized, utils.H{"error": "无效的API Key"})
			c.Abort()
		}),
	)
}
