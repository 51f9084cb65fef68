package matcher

import (
	"strings"

	"hr-agent-go/internal/types"
)

// scoreRequirements 职责/任职要求覆盖评分。
// 把responsibilities与qualifications拼接成需求列表，对每条需求做
// 停用词过滤后的关键词子串测试: 只要有一个关键词出现在候选人叙述文本里，
// 这条需求就按完全覆盖计入100/total。部分重合记满分是既定的粗粒度口径，
// 需要保持不变以维持分数兼容。
func (e *Engine) scoreRequirements(j *types.JobProfile, narrative string) (float64, types.RequirementsDetails) {
	requirements := make([]string, 0, len(j.Responsibilities)+len(j.Qualifications))
	requirements = append(requirements, j.Responsibilities...)
	requirements = append(requirements, j.Qualifications...)

	// 没有任何需求时按完全覆盖处理，与其他评估器的空要求口径一致
	if len(requirements) == 0 {
		return 100, types.RequirementsDetails{
			TotalRequirements:   0,
			CoveredRequirements: nil,
			MissedRequirements:  nil,
			CoverageRate:        1.0,
		}
	}

	var covered, missed []string
	score := 0.0

	for _, req := range requirements {
		keywords := keywordTokens(req, e.stopWords)

		hit := false
		for kw := range keywords {
			if strings.Contains(narrative, kw) {
				hit = true
				break
			}
		}

		if hit {
			score += 100 / float64(len(requirements))
			covered = append(covered, req)
		} else {
			missed = append(missed, req)
		}
	}

	if score > 100 {
		score = 100
	}

	details := types.RequirementsDetails{
		TotalRequirements:   len(requirements),
		CoveredRequirements: covered,
		MissedRequirements:  missed,
		CoverageRate:        float64(len(covered)) / float64(len(requirements)),
	}

	return score, details
}
