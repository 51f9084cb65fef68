package matcher

import (
	"strings"

	"hr-agent-go/internal/types"
)

// scoreCulture 文化契合度启发式评估。
// 从中性分50起步，各项调整相互独立: 领导力关键词、成长导向关键词、
// 工作地点兼容性。最终截断到[0,100]。
func (e *Engine) scoreCulture(c *types.CandidateProfile, j *types.JobProfile, narrative string) (float64, types.CultureDetails) {
	score := 50.0
	indicators := make(map[string]string)

	// 领导力信号: 统计命中的关键词个数(lead/manage/team等)
	leadershipCount := countKeywordsPresent(narrative, e.cfg.LeadershipKeywords)
	if leadershipCount > 2 {
		score += 15
		indicators["leadership_experience"] = "strong"
	} else if leadershipCount > 0 {
		score += 5
		indicators["leadership_experience"] = "moderate"
	}

	// 成长导向信号(startup/agile/learn等)
	growthCount := countKeywordsPresent(narrative, e.cfg.GrowthKeywords)
	if growthCount > 1 {
		score += 10
		indicators["growth_orientation"] = "high"
	}

	// 地点兼容性: 双方都有地点时才参与打分
	candidateLocation := ""
	if c.PersonalInfo != nil {
		candidateLocation = c.PersonalInfo.Location
	}
	if candidateLocation != "" && j.Location != "" {
		if locationsCompatible(candidateLocation, j.Location) {
			score += 10
			indicators["location_flexibility"] = "compatible"
		} else {
			score -= 5
			indicators["location_flexibility"] = "incompatible"
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return score, types.CultureDetails{Indicators: indicators}
}

// locationsCompatible 地点兼容判定:
// 岗位为Remote、任一侧包含remote、或逗号前的城市名(忽略大小写)一致。
func locationsCompatible(candidateLocation, jobLocation string) bool {
	jobLower := strings.ToLower(jobLocation)
	if jobLower == "remote" {
		return true
	}
	if strings.Contains(jobLower, "remote") || strings.Contains(strings.ToLower(candidateLocation), "remote") {
		return true
	}

	candidateCity := strings.ToLower(strings.TrimSpace(strings.SplitN(candidateLocation, ",", 2)[0]))
	jobCity := strings.ToLower(strings.TrimSpace(strings.SplitN(jobLocation, ",", 2)[0]))
	return candidateCity == jobCity
}
