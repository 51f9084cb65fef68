package matcher

import (
	"context"
	"fmt"
	"time"

	"hr-agent-go/internal/constants"
	"hr-agent-go/internal/logger"
	"hr-agent-go/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var matcherTracer = otel.Tracer("hr-agent-go/matcher")

// Engine 人岗匹配引擎。
// 纯计算组件: 没有I/O、没有共享可变状态，同一实例可被任意数量的
// goroutine并发调用(批量排序场景下调用方自行做并发扇出)。
type Engine struct {
	cfg       *Config
	stopWords map[string]struct{} // 由cfg.StopWords预构建，只读
	logger    zerolog.Logger
}

// Option 引擎配置选项
type Option func(*Engine)

// WithLogger 设置引擎日志实例
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine 创建匹配引擎。cfg为nil时使用默认配置；
// 配置(含权重总和)在这里一次性校验，之后不再变更。
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("匹配引擎配置无效: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		stopWords: cfg.stopWordSet(),
		logger:    logger.Logger.With().Str("component", "matcher").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Match 计算候选人与岗位的匹配结果。这是引擎唯一的对外操作。
// 只在输入缺失必填字段时返回ErrInvalidInput；评分过程中的任何
// 未预期异常被捕获后包装为ErrComputation，不返回部分结果。
func (e *Engine) Match(ctx context.Context, candidate *types.CandidateProfile, job *types.JobProfile) (result *types.MatchResult, err error) {
	_, span := matcherTracer.Start(ctx, "matcher.Match")
	defer span.End()

	// 契约校验，在任何评分开始前快速失败
	if candidate == nil {
		err = fmt.Errorf("%w: 候选人档案为空", ErrInvalidInput)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if job == nil {
		err = fmt.Errorf("%w: 岗位画像为空", ErrInvalidInput)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if missing := candidate.MissingFields(); len(missing) > 0 {
		err = invalidInputError("候选人档案", missing)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if missing := job.MissingFields(); len(missing) > 0 {
		err = invalidInputError("岗位画像", missing)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// 评分全程的保护网: 嵌套字段异常等统一包装，不向上抛panic
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("匹配计算过程中出现未预期异常")
			span.SetStatus(codes.Error, fmt.Sprint(r))
			result = nil
			err = fmt.Errorf("%w: %v", ErrComputation, r)
		}
	}()

	// 候选人叙述文本只构建一次，关键词类评估器共用
	narrative := buildNarrative(candidate)

	// 六个评估器相互独立，各自只读两份输入档案
	skillsScore, skillsDetails := e.scoreSkills(candidate, job)
	experienceScore, experienceDetails := e.scoreExperience(candidate, job)
	educationScore, educationDetails := e.scoreEducation(candidate, job)
	requirementsScore, requirementsDetails := e.scoreRequirements(job, narrative)
	cultureScore, cultureDetails := e.scoreCulture(candidate, job, narrative)
	bonusScore, bonusDetails := e.scoreBonus(candidate, job, narrative)

	componentScores := types.ComponentScores{
		SkillsMatch:          round2(skillsScore),
		ExperienceMatch:      round2(experienceScore),
		EducationMatch:       round2(educationScore),
		RequirementsCoverage: round2(requirementsScore),
		CulturalFit:          round2(cultureScore),
		BonusFactors:         round2(bonusScore),
	}

	overallScore := round2(e.computeOverallScore(types.ComponentScores{
		SkillsMatch:          skillsScore,
		ExperienceMatch:      experienceScore,
		EducationMatch:       educationScore,
		RequirementsCoverage: requirementsScore,
		CulturalFit:          cultureScore,
		BonusFactors:         bonusScore,
	}))

	gaps := analyzeGaps(job, skillsDetails, experienceDetails, educationDetails.Gaps)

	result = &types.MatchResult{
		OverallScore:    overallScore,
		ComponentScores: componentScores,
		MatchCategory:   categorizeMatch(overallScore),
		Strengths:       identifyStrengths(skillsDetails, experienceDetails),
		Gaps:            gaps,
		Recommendations: generateRecommendations(gaps),
		ConfidenceScore: calculateConfidence(candidate, job),
		Detailed: types.DetailedAnalysis{
			Skills:       skillsDetails,
			Experience:   experienceDetails,
			Education:    educationDetails,
			Requirements: requirementsDetails,
			Culture:      cultureDetails,
			Bonus:        bonusDetails,
		},
		Metadata: types.MatchMetadata{
			MatchedAt:      time.Now(),
			ScoringVersion: constants.ScoringVersion,
		},
	}

	span.SetAttributes(
		attribute.Float64("match.overall_score", overallScore),
		attribute.String("match.category", string(result.MatchCategory)),
	)

	return result, nil
}
