package matcher

import (
	"strings"

	"hr-agent-go/internal/types"
)

// scoreEducation 教育匹配评分。
// 对每条岗位学历要求，在候选人学历中找token集合Jaccard相似度最高的一条；
// 相似度必须严格大于阈值(0.6)才算命中——接近但不足的按缺口处理，不给部分分。
func (e *Engine) scoreEducation(c *types.CandidateProfile, j *types.JobProfile) (float64, types.EducationDetails) {
	var matches []types.EducationMatch
	var gaps []string

	for _, jobDegree := range j.Education {
		bestScore := 0.0
		bestDegree := ""
		// 相似度相同时保留先出现的一条(严格大于才替换)
		for _, edu := range c.Education {
			score := degreeSimilarity(jobDegree, edu.Degree)
			if score > bestScore {
				bestScore = score
				bestDegree = edu.Degree
			}
		}

		if bestDegree != "" && bestScore > educationMatchThreshold {
			matches = append(matches, types.EducationMatch{
				JobRequirement:     jobDegree,
				CandidateEducation: bestDegree,
				SimilarityScore:    bestScore,
			})
		} else {
			gaps = append(gaps, jobDegree)
		}
	}

	// 没有学历要求即满分
	score := 100.0
	if len(j.Education) > 0 {
		score = float64(len(matches)) / float64(len(j.Education)) * 100
	}

	details := types.EducationDetails{
		Matches:       matches,
		Gaps:          gaps,
		HighestDegree: e.highestDegree(c.Education),
	}

	return score, details
}

// degreeSimilarity 两个学位字符串的token集合Jaccard相似度
// (小写、按空白切分，|交集|/|并集|)
func degreeSimilarity(jobDegree, candidateDegree string) float64 {
	jobTokens := keywordTokens(jobDegree, nil)
	candTokens := keywordTokens(candidateDegree, nil)

	intersection := 0
	for tok := range jobTokens {
		if _, ok := candTokens[tok]; ok {
			intersection++
		}
	}
	union := len(jobTokens) + len(candTokens) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// highestDegree 按固定层级表找出候选人最高学位。
// 层级相同时保留先出现的一条(严格大于才替换)。
func (e *Engine) highestDegree(education []types.EducationEntry) string {
	highest := ""
	highestLevel := 0

	for _, edu := range education {
		degree := strings.ToLower(edu.Degree)
		for _, dl := range e.cfg.DegreeHierarchy {
			if strings.Contains(degree, dl.Keyword) && dl.Level > highestLevel {
				highest = edu.Degree
				highestLevel = dl.Level
			}
		}
	}

	return highest
}
