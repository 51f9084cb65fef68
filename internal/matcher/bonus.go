package matcher

import (
	"fmt"
	"strings"

	"hr-agent-go/internal/types"
)

// scoreBonus 加分项评估: 线上档案、证书、项目数量、文化关键词重合。
// 各项贡献直接累加。注意这里刻意不做[0,100]截断——加分总和以原值进入
// 加权聚合，这与其他子分数不同，是既定口径(改动会整体抬高/压低分布)。
func (e *Engine) scoreBonus(c *types.CandidateProfile, j *types.JobProfile, narrative string) (float64, types.BonusDetails) {
	score := 0.0
	var details types.BonusDetails

	// 线上档案: 只看是否存在，可达性验证在引擎之外
	if c.OnlinePresence.GitHub != "" || c.OnlinePresence.Portfolio != "" {
		score += 10
		details.OnlinePresence = "verified profiles"
	}

	// 证书: 每张1分，封顶5分
	if n := len(c.Certifications); n > 0 {
		points := n
		if points > 5 {
			points = 5
		}
		score += float64(points)
		details.Certifications = fmt.Sprintf("%d certifications", n)
	}

	// 项目: 超过2个加5分
	if n := len(c.Projects); n > 2 {
		score += 5
		details.Projects = fmt.Sprintf("%d significant projects", n)
	}

	// 文化关键词: 同时出现在岗位文本与候选人叙述中的关键词，
	// 每个2分，封顶5分
	jobText := strings.ToLower(strings.Join(append(append([]string{}, j.Responsibilities...), j.Qualifications...), " "))
	matches := 0
	for _, kw := range e.cfg.CultureKeywords {
		if strings.Contains(jobText, kw) && strings.Contains(narrative, kw) {
			matches++
		}
	}
	if matches > 0 {
		points := float64(matches * 2)
		if points > 5 {
			points = 5
		}
		score += points
		details.CultureKeywords = fmt.Sprintf("%d culture keyword matches", matches)
	}

	details.TotalBonusPoints = score
	return score, details
}
