package types

import "time"

// MatchCategory 匹配档位，按overall_score划分的五个固定区间
type MatchCategory string

const (
	// MatchExcellent overall_score >= 85
	MatchExcellent MatchCategory = "excellent_match"
	// MatchStrong overall_score >= 75
	MatchStrong MatchCategory = "strong_match"
	// MatchGood overall_score >= 60
	MatchGood MatchCategory = "good_match"
	// MatchModerate overall_score >= 40
	MatchModerate MatchCategory = "moderate_match"
	// MatchWeak 其余
	MatchWeak MatchCategory = "weak_match"
)

// ComponentScores 六个子分数，加权前各自已限制在[0,100]
// （bonus_factors除外，为保持与历史评分分布一致，它不做单独截断）
type ComponentScores struct {
	SkillsMatch          float64 `json:"skills_match"`
	ExperienceMatch      float64 `json:"experience_match"`
	EducationMatch       float64 `json:"education_match"`
	RequirementsCoverage float64 `json:"requirements_coverage"`
	CulturalFit          float64 `json:"cultural_fit"`
	BonusFactors         float64 `json:"bonus_factors"`
}

// ExperienceGap 经验缺口记录
type ExperienceGap struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // critical 或 moderate
}

// GapAnalysis 差距分析结果
type GapAnalysis struct {
	CriticalGaps     []string        `json:"critical_gaps"`
	ImprovementAreas []string        `json:"improvement_areas"`
	NiceToHave       []string        `json:"nice_to_have"`
	SkillGaps        []string        `json:"skill_gaps"`
	ExperienceGaps   []ExperienceGap `json:"experience_gaps"`
	EducationGaps    []string        `json:"education_gaps"`
}

// SkillsDetails 技能匹配明细
type SkillsDetails struct {
	MatchedRequired  []string `json:"matched_required"`
	MatchedPreferred []string `json:"matched_preferred"`
	MissingCritical  []string `json:"missing_critical"`
	MissingPreferred []string `json:"missing_preferred"`
	ExtraSkills      []string `json:"extra_skills"`
	// SkillGapsByCategory 缺失技能按类别归类(programming_languages等)
	SkillGapsByCategory map[string][]string `json:"skill_gaps_by_category"`
}

// ExperienceDetails 经验匹配明细
type ExperienceDetails struct {
	CandidateYears      float64 `json:"candidate_years"`
	CandidateLevel      string  `json:"candidate_level"`
	JobLevel            string  `json:"job_level"`
	LevelAlignmentScore float64 `json:"level_alignment_score"`
	YearsFitScore       float64 `json:"years_fit_score"`
	// ExperienceRelevance 经历文本与岗位职责的关键词重合率(0-100)
	ExperienceRelevance float64 `json:"experience_relevance"`
}

// EducationMatch 一条教育要求的最佳匹配
type EducationMatch struct {
	JobRequirement     string  `json:"job_requirement"`
	CandidateEducation string  `json:"candidate_education"`
	SimilarityScore    float64 `json:"similarity_score"`
}

// EducationDetails 教育匹配明细
type EducationDetails struct {
	Matches       []EducationMatch `json:"education_matches"`
	Gaps          []string         `json:"education_gaps"`
	HighestDegree string           `json:"highest_degree,omitempty"`
}

// RequirementsDetails 职责/任职要求覆盖明细
type RequirementsDetails struct {
	TotalRequirements   int      `json:"total_requirements"`
	CoveredRequirements []string `json:"covered_requirements"`
	MissedRequirements  []string `json:"missed_requirements"`
	CoverageRate        float64  `json:"coverage_rate"`
}

// CultureDetails 文化契合度明细
type CultureDetails struct {
	Indicators map[string]string `json:"indicators"`
}

// BonusDetails 加分项明细
type BonusDetails struct {
	OnlinePresence   string  `json:"online_presence,omitempty"`
	Certifications   string  `json:"certifications,omitempty"`
	Projects         string  `json:"projects,omitempty"`
	CultureKeywords  string  `json:"culture_keywords,omitempty"`
	TotalBonusPoints float64 `json:"total_bonus_points"`
}

// DetailedAnalysis 各评估器的完整明细，供报告层展示
type DetailedAnalysis struct {
	Skills       SkillsDetails       `json:"skills_details"`
	Experience   ExperienceDetails   `json:"experience_details"`
	Education    EducationDetails    `json:"education_details"`
	Requirements RequirementsDetails `json:"requirements_details"`
	Culture      CultureDetails      `json:"culture_details"`
	Bonus        BonusDetails        `json:"bonus_details"`
}

// MatchMetadata 匹配元信息
type MatchMetadata struct {
	MatchedAt      time.Time `json:"matched_at"`
	ScoringVersion string    `json:"scoring_version"`
}

// MatchResult 人岗匹配结果，每次调用新构造，返回后不再修改
type MatchResult struct {
	OverallScore    float64         `json:"overall_score"`
	ComponentScores ComponentScores `json:"component_scores"`
	MatchCategory   MatchCategory   `json:"match_category"`
	Strengths       []string        `json:"strengths"`
	Gaps            GapAnalysis     `json:"gaps"`
	// Recommendations 按优先级排列，最多5条
	Recommendations []string         `json:"recommendations"`
	ConfidenceScore float64          `json:"confidence_score"` // 输入完整度置信分，[50,100]
	Detailed        DetailedAnalysis `json:"detailed_analysis"`
	Metadata        MatchMetadata    `json:"metadata"`
}

// RankedCandidate 批量排序结果中的一项
type RankedCandidate struct {
	CandidateID   string        `json:"candidate_id"`
	OverallScore  float64       `json:"overall_score"`
	MatchCategory MatchCategory `json:"match_category"`
}
