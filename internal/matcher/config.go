package matcher

import (
	"fmt"
	"math"
)

// Weights 六个子分数的聚合权重，约束为总和等于1.0
type Weights struct {
	SkillsMatch          float64 `yaml:"skills_match" json:"skills_match"`
	ExperienceMatch      float64 `yaml:"experience_match" json:"experience_match"`
	EducationMatch       float64 `yaml:"education_match" json:"education_match"`
	RequirementsCoverage float64 `yaml:"requirements_coverage" json:"requirements_coverage"`
	CulturalFit          float64 `yaml:"cultural_fit" json:"cultural_fit"`
	BonusFactors         float64 `yaml:"bonus_factors" json:"bonus_factors"`
}

// Sum 返回权重总和
func (w Weights) Sum() float64 {
	return w.SkillsMatch + w.ExperienceMatch + w.EducationMatch +
		w.RequirementsCoverage + w.CulturalFit + w.BonusFactors
}

// SkillCategory 缺失技能归类用的一个类别。Keywords按子串包含方式匹配，
// 类别按切片顺序互斥判定，命中即止。
type SkillCategory struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// DegreeLevel 学位层级表中的一项。Keyword按子串包含匹配学位名称
type DegreeLevel struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Level   int    `yaml:"level" json:"level"`
}

// Config 引擎配置。构造后不可变: 同一个Engine会被任意数量的goroutine并发
// 调用，评分过程只读取这里的表，绝不回写。
type Config struct {
	// Weights 聚合权重，加载时校验总和为1.0
	Weights Weights `yaml:"weights"`

	// LeadershipKeywords 文化契合度评估用的领导力关键词
	LeadershipKeywords []string `yaml:"leadership_keywords"`
	// GrowthKeywords 成长导向关键词
	GrowthKeywords []string `yaml:"growth_keywords"`
	// CultureKeywords 加分项评估用的文化关键词
	CultureKeywords []string `yaml:"culture_keywords"`
	// StopWords 需求覆盖评估中剔除的英文常用词
	StopWords []string `yaml:"stop_words"`
	// SkillCategories 缺失技能归类表，未命中任何类别的技能归入other_skills
	SkillCategories []SkillCategory `yaml:"skill_categories"`
	// DegreeHierarchy 学位层级表，层级大者为高
	DegreeHierarchy []DegreeLevel `yaml:"degree_hierarchy"`
}

// 匹配档位阈值与各项打分常量。这些是评分契约的一部分，固定不可配置
const (
	thresholdExcellent = 85.0
	thresholdStrong    = 75.0
	thresholdGood      = 60.0
	thresholdModerate  = 40.0

	levelExactScore    = 100.0 // 级别完全一致
	levelAdjacentScore = 70.0  // 相邻级别
	levelDistantScore  = 30.0  // 相差两级及以上
	levelUnknownScore  = 50.0  // 岗位级别无法识别时的中性分

	yearsOverFloor  = 60.0 // 经验超出上限的惩罚下限
	yearsUnderFloor = 20.0 // 经验不足的惩罚下限

	educationMatchThreshold = 0.6 // 学位Jaccard相似度的严格匹配阈值

	confidenceBase  = 80.0
	confidenceFloor = 50.0
)

// DefaultConfig 返回默认配置，各张表与线上评分口径一致
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			SkillsMatch:          0.35,
			ExperienceMatch:      0.25,
			EducationMatch:       0.10,
			RequirementsCoverage: 0.15,
			CulturalFit:          0.10,
			BonusFactors:         0.05,
		},
		LeadershipKeywords: []string{"lead", "manage", "team", "direct", "mentor", "coach"},
		GrowthKeywords:     []string{"startup", "fast-paced", "agile", "learn", "grow", "scale"},
		CultureKeywords: []string{
			"innovation", "excellence", "quality", "customer-focused",
			"results-driven", "collaborative", "efficient", "scalable",
		},
		StopWords: []string{
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
			"of", "with", "by", "from", "as", "are", "is", "was", "be", "have",
			"has", "had", "will", "would", "should", "could", "can", "may",
		},
		SkillCategories: []SkillCategory{
			{Name: "programming_languages", Keywords: []string{"python", "javascript", "java", "go"}},
			{Name: "frontend_frameworks", Keywords: []string{"react", "angular", "vue"}},
			{Name: "cloud_tools", Keywords: []string{"aws", "azure", "docker"}},
		},
		DegreeHierarchy: []DegreeLevel{
			{Keyword: "phd", Level: 5},
			{Keyword: "doctorate", Level: 5},
			{Keyword: "master", Level: 4},
			{Keyword: "bachelor", Level: 3},
			{Keyword: "associate", Level: 2},
			{Keyword: "certificate", Level: 1},
		},
	}
}

// Validate 校验配置合法性。权重总和偏离1.0视为缺陷而不是静默归一化
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("配置不能为空")
	}
	sum := c.Weights.Sum()
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("聚合权重总和必须为1.0, 实际为 %v", sum)
	}
	for _, w := range []float64{
		c.Weights.SkillsMatch, c.Weights.ExperienceMatch, c.Weights.EducationMatch,
		c.Weights.RequirementsCoverage, c.Weights.CulturalFit, c.Weights.BonusFactors,
	} {
		if w < 0 {
			return fmt.Errorf("聚合权重不能为负数: %v", w)
		}
	}
	return nil
}

// stopWordSet 把停用词表转成查询集合
func (c *Config) stopWordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.StopWords))
	for _, w := range c.StopWords {
		set[w] = struct{}{}
	}
	return set
}
