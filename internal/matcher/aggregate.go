package matcher

import (
	"hr-agent-go/internal/types"
)

// computeOverallScore 加权聚合六个子分数，结果截断在100以内
func (e *Engine) computeOverallScore(scores types.ComponentScores) float64 {
	w := e.cfg.Weights
	overall := scores.SkillsMatch*w.SkillsMatch +
		scores.ExperienceMatch*w.ExperienceMatch +
		scores.EducationMatch*w.EducationMatch +
		scores.RequirementsCoverage*w.RequirementsCoverage +
		scores.CulturalFit*w.CulturalFit +
		scores.BonusFactors*w.BonusFactors
	if overall > 100 {
		overall = 100
	}
	return overall
}

// categorizeMatch 按固定阈值划分匹配档位，阈值为闭下界、从高到低判定
func categorizeMatch(overallScore float64) types.MatchCategory {
	switch {
	case overallScore >= thresholdExcellent:
		return types.MatchExcellent
	case overallScore >= thresholdStrong:
		return types.MatchStrong
	case overallScore >= thresholdGood:
		return types.MatchGood
	case overallScore >= thresholdModerate:
		return types.MatchModerate
	default:
		return types.MatchWeak
	}
}

// CategoryForScore 对外暴露档位判定，供排名缓存回填档位使用
func CategoryForScore(overallScore float64) types.MatchCategory {
	return categorizeMatch(overallScore)
}

// identifyStrengths 从技能与经验明细中提取候选人亮点标签
func identifyStrengths(skills types.SkillsDetails, experience types.ExperienceDetails) []string {
	var strengths []string

	if len(skills.MatchedRequired) > 2 {
		strengths = append(strengths, "Strong skills alignment")
	}
	if len(skills.ExtraSkills) > 0 {
		strengths = append(strengths, "Additional valuable skills")
	}
	if len(skills.MatchedPreferred) > 0 {
		strengths = append(strengths, "Nice-to-have skills match")
	}

	if experience.CandidateYears > 5 {
		strengths = append(strengths, "Extensive experience")
	} else if experience.CandidateYears > 3 {
		strengths = append(strengths, "Solid experience base")
	}

	if experience.LevelAlignmentScore > 80 {
		strengths = append(strengths, "Experience level alignment")
	}

	return strengths
}

// calculateConfidence 输入完整度置信分。
// 基准80，缺工作经历-10，缺技术技能-15，岗位无必备技能要求-20，下限50。
func calculateConfidence(c *types.CandidateProfile, j *types.JobProfile) float64 {
	confidence := confidenceBase

	if len(c.Experience) == 0 {
		confidence -= 10
	}
	if len(c.Skills.Technical) == 0 {
		confidence -= 15
	}
	if len(j.RequiredSkills) == 0 {
		confidence -= 20
	}

	if confidence < confidenceFloor {
		return confidenceFloor
	}
	return confidence
}
