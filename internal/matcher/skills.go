package matcher

import (
	"strings"

	"hr-agent-go/internal/types"
)

// scoreSkills 技能匹配评分 (0-100)。
// required_score满分100，preferred最多再加50，总分截断在100——
// 也就是说必备技能全中时，加分技能不再抬分。这个饱和式加成是评分契约，
// 不能改成两段各自归一化。
func (e *Engine) scoreSkills(c *types.CandidateProfile, j *types.JobProfile) (float64, types.SkillsDetails) {
	// 候选人技能: technical ∪ soft，归一化后参与比较。
	// 岗位侧技能按原样比较，大小写归一由调用方负责(JobProfile.Normalize)。
	candidateSet, candidateOrdered := normalizeSkillSet(c.Skills.Technical, c.Skills.Soft)
	requiredSet := toSet(j.RequiredSkills)
	preferredSet := toSet(j.PreferredSkills)

	// 按岗位侧给出的顺序遍历，保证明细列表顺序确定
	var matchedRequired, missingCritical []string
	for _, skill := range j.RequiredSkills {
		if _, ok := candidateSet[skill]; ok {
			matchedRequired = append(matchedRequired, skill)
		} else {
			missingCritical = append(missingCritical, skill)
		}
	}

	var matchedPreferred, missingPreferred []string
	for _, skill := range j.PreferredSkills {
		if _, ok := candidateSet[skill]; ok {
			matchedPreferred = append(matchedPreferred, skill)
		} else {
			missingPreferred = append(missingPreferred, skill)
		}
	}

	// 必备技能: 空集按完全匹配处理(没有要求即满分)
	requiredScore := 100.0
	if len(j.RequiredSkills) > 0 {
		requiredScore = float64(len(matchedRequired)) / float64(len(j.RequiredSkills)) * 100
	}

	// 加分技能: 空集同样给100，非空时最多贡献50
	preferredScore := 100.0
	if len(j.PreferredSkills) > 0 {
		preferredScore = float64(len(matchedPreferred)) / float64(max(1, len(j.PreferredSkills))) * 50
	}

	skillsScore := requiredScore + preferredScore
	if skillsScore > 100 {
		skillsScore = 100
	}

	// 候选人独有技能: 不属于岗位任何一侧集合
	var extraSkills []string
	for _, skill := range candidateOrdered {
		_, inRequired := requiredSet[skill]
		_, inPreferred := preferredSet[skill]
		if !inRequired && !inPreferred {
			extraSkills = append(extraSkills, skill)
		}
	}

	details := types.SkillsDetails{
		MatchedRequired:     matchedRequired,
		MatchedPreferred:    matchedPreferred,
		MissingCritical:     missingCritical,
		MissingPreferred:    missingPreferred,
		ExtraSkills:         extraSkills,
		SkillGapsByCategory: e.categorizeSkillGaps(missingCritical),
	}

	return skillsScore, details
}

// categorizeSkillGaps 把缺失的必备技能按配置的类别表归类，
// 未命中任何类别的归入other_skills。只输出非空类别。
func (e *Engine) categorizeSkillGaps(missing []string) map[string][]string {
	gaps := make(map[string][]string)

	for _, skill := range missing {
		lower := strings.ToLower(skill)
		category := "other_skills"
		for _, cat := range e.cfg.SkillCategories {
			if countKeywordsPresent(lower, cat.Keywords) > 0 {
				category = cat.Name
				break
			}
		}
		gaps[category] = append(gaps[category], skill)
	}

	return gaps
}
