package matcher

import (
	"strings"

	"hr-agent-go/internal/types"
)

// ExperienceLevel 经验级别的闭合枚举。岗位侧原始字符串可能是任意值，
// 解析失败映射为LevelUnknown并在打分时走中性分，而不是报错。
type ExperienceLevel int

const (
	// LevelUnknown 无法识别的级别
	LevelUnknown ExperienceLevel = iota - 1
	// LevelEntry 入门级
	LevelEntry
	// LevelMid 中级
	LevelMid
	// LevelSenior 高级
	LevelSenior
	// LevelExpert 专家级
	LevelExpert
)

var levelNames = [...]string{"entry", "mid", "senior", "expert"}

// String 返回级别的规范名称
func (l ExperienceLevel) String() string {
	if l < LevelEntry || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseExperienceLevel 解析岗位侧级别字符串
func ParseExperienceLevel(s string) ExperienceLevel {
	norm := strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if norm == name {
			return ExperienceLevel(i)
		}
	}
	return LevelUnknown
}

// levelForYears 按固定年限区间推导候选人级别
func levelForYears(years float64) ExperienceLevel {
	switch {
	case years >= 10:
		return LevelExpert
	case years >= 5:
		return LevelSenior
	case years >= 2:
		return LevelMid
	default:
		return LevelEntry
	}
}

// estimateYears 估算候选人总工作年限。
// 上游给出精确年限时直接采用；否则按经历条数粗估(每段按1.5年计，
// 有经历时下限0.5年)。这是刻意的粗粒度代理，不做日期区间解析。
func estimateYears(c *types.CandidateProfile) float64 {
	if c.YearsExperience > 0 {
		return c.YearsExperience
	}
	if len(c.Experience) == 0 {
		return 0
	}
	years := 1.5 * float64(len(c.Experience))
	if years < 0.5 {
		years = 0.5
	}
	return years
}

// scoreExperience 经验匹配评分: 级别对齐分与年限适配分的算术平均
func (e *Engine) scoreExperience(c *types.CandidateProfile, j *types.JobProfile) (float64, types.ExperienceDetails) {
	candidateYears := estimateYears(c)
	candidateLevel := levelForYears(candidateYears)
	jobLevel := ParseExperienceLevel(j.ExperienceLevel)

	levelScore := scoreLevelAlignment(candidateLevel, jobLevel)
	yearsScore := scoreYearsFit(candidateYears, j.YearsExperienceMin, j.YearsExperienceMax)

	experienceScore := (levelScore + yearsScore) / 2

	details := types.ExperienceDetails{
		CandidateYears:      round1(candidateYears),
		CandidateLevel:      candidateLevel.String(),
		JobLevel:            j.ExperienceLevel,
		LevelAlignmentScore: levelScore,
		YearsFitScore:       yearsScore,
		ExperienceRelevance: e.experienceRelevance(c, j),
	}

	return experienceScore, details
}

// scoreLevelAlignment 级别对齐打分: 一致100，相邻70，其余30，岗位级别未知50
func scoreLevelAlignment(candidate, job ExperienceLevel) float64 {
	if job == LevelUnknown {
		return levelUnknownScore
	}
	distance := int(candidate) - int(job)
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return levelExactScore
	case 1:
		return levelAdjacentScore
	default:
		return levelDistantScore
	}
}

// scoreYearsFit 年限适配打分。
// 达到下限: 无上限或未超出上限给满分，超出按每年-1惩罚，下限60；
// 未达下限: 每缺一年-20，下限20。jobMax<=0视为未给出上限。
func scoreYearsFit(candidateYears, jobMin, jobMax float64) float64 {
	if candidateYears >= jobMin {
		if jobMax <= 0 || candidateYears <= jobMax {
			return 100
		}
		over := 100 - (candidateYears - jobMax)
		if over < yearsOverFloor {
			return yearsOverFloor
		}
		return over
	}
	under := 100 - (jobMin-candidateYears)*20
	if under < yearsUnderFloor {
		return yearsUnderFloor
	}
	return under
}

// experienceRelevance 经历文本与岗位职责的关键词重合率(0-100)，
// 只进入明细，不参与加权
func (e *Engine) experienceRelevance(c *types.CandidateProfile, j *types.JobProfile) float64 {
	var achievements []string
	for _, exp := range c.Experience {
		achievements = append(achievements, exp.Achievements...)
	}

	stopWords := e.stopWords
	jobTokens := keywordTokens(strings.Join(j.Responsibilities, " "), stopWords)
	expTokens := keywordTokens(strings.Join(achievements, " "), stopWords)

	overlap := 0
	for tok := range jobTokens {
		if _, ok := expTokens[tok]; ok {
			overlap++
		}
	}
	union := len(jobTokens) + len(expTokens) - overlap
	if union == 0 {
		return 0
	}
	return float64(overlap) / float64(union) * 100
}
