package matcher

import (
	"fmt"

	"hr-agent-go/internal/types"
)

// analyzeGaps 差距分析。
// 经验缺口按差距年限定级(>2年为critical，否则moderate)；
// 缺失的必备技能逐条进入critical_gaps；
// 最多取3个缺失的加分技能进入improvement_areas。
func analyzeGaps(j *types.JobProfile, skills types.SkillsDetails, experience types.ExperienceDetails, educationGaps []string) types.GapAnalysis {
	gaps := types.GapAnalysis{
		NiceToHave:    []string{},
		SkillGaps:     skills.MissingCritical,
		EducationGaps: educationGaps,
	}

	// 经验缺口
	if experience.CandidateYears < j.YearsExperienceMin {
		gapYears := j.YearsExperienceMin - experience.CandidateYears
		severity := "moderate"
		if gapYears > 2 {
			severity = "critical"
		}
		gaps.ExperienceGaps = append(gaps.ExperienceGaps, types.ExperienceGap{
			Type:        "years_experience",
			Description: fmt.Sprintf("Needs %g more years of experience", gapYears),
			Severity:    severity,
		})
		gaps.CriticalGaps = append(gaps.CriticalGaps, "Insufficient years of experience")
	}

	// 缺失的必备技能全部视为关键缺口
	for _, skill := range skills.MissingCritical {
		gaps.CriticalGaps = append(gaps.CriticalGaps, "Missing critical skill: "+skill)
	}

	// 缺失的加分技能最多取前3个作为改进方向
	for i, skill := range skills.MissingPreferred {
		if i >= 3 {
			break
		}
		gaps.ImprovementAreas = append(gaps.ImprovementAreas, "Preferred skill: "+skill)
	}

	return gaps
}

// generateRecommendations 生成改进建议。
// 固定顺序的规则级联，不是打分排序的推荐器: 关键缺口提示 → 最多2条
// 技能学习建议 → 经验积累建议 → (无缺口时)正向反馈。封顶5条。
func generateRecommendations(gaps types.GapAnalysis) []string {
	var recommendations []string

	if len(gaps.CriticalGaps) > 0 {
		recommendations = append(recommendations, "🔴 Immediately address: "+gaps.CriticalGaps[0])
	}

	for i, skill := range gaps.SkillGaps {
		if i >= 2 {
			break
		}
		recommendations = append(recommendations, fmt.Sprintf("📚 Learn: %s - Consider online courses or certifications", skill))
	}

	if len(gaps.ExperienceGaps) > 0 {
		recommendations = append(recommendations, "💼 Gain experience: Look for projects or roles that build the required experience")
	}

	if len(gaps.CriticalGaps) == 0 && len(gaps.SkillGaps) == 0 {
		recommendations = append(recommendations, "✅ Good fit! Focus on highlighting relevant experience in your application")
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations
}
