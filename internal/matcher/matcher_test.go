package matcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-agent-go/internal/types"
)

// fullCandidate 一份字段齐全的候选人档案
func fullCandidate() *types.CandidateProfile {
	return &types.CandidateProfile{
		PersonalInfo: &types.PersonalInfo{
			Name:     "Jordan Lee",
			Title:    "Senior Backend Engineer",
			Location: "Berlin, Germany",
		},
		Experience: []types.ExperienceEntry{
			{
				Title:   "Backend Engineer",
				Company: "Acme",
				Achievements: []string{
					"Built scalable golang microservices",
					"Lead a team of four engineers and mentor juniors",
				},
				Technologies: []string{"go", "mysql"},
			},
			{
				Title:        "Software Engineer",
				Company:      "Startup GmbH",
				Achievements: []string{"Worked in a fast-paced agile startup"},
			},
		},
		Skills: types.SkillSet{
			Technical: []string{"Go", "MySQL", "Redis", "Docker"},
			Soft:      []string{"Communication"},
		},
		Education: []types.EducationEntry{
			{Degree: "Bachelor of Science in Computer Science", Institution: "TU Berlin"},
		},
		Certifications: []types.Certification{{Name: "CKA"}},
		Projects: []types.Project{
			{Name: "p1", Description: "distributed cache"},
			{Name: "p2", Description: "rate limiter"},
			{Name: "p3", Description: "cli tooling"},
		},
		OnlinePresence:  types.OnlinePresence{GitHub: "https://github.com/jordan"},
		YearsExperience: 6,
	}
}

// fullJob 一份字段齐全的岗位画像(技能已预先小写归一)
func fullJob() *types.JobProfile {
	return &types.JobProfile{
		Title:              "Senior Backend Engineer",
		RequiredSkills:     []string{"go", "mysql", "redis"},
		PreferredSkills:    []string{"docker", "kubernetes"},
		ExperienceLevel:    "senior",
		YearsExperienceMin: 5,
		YearsExperienceMax: 8,
		Education:          []string{"bachelor of science in computer science"},
		Responsibilities:   []string{"Build scalable golang services", "Operate mysql and redis"},
		Qualifications:     []string{"5 years of backend experience"},
		Location:           "Berlin, Germany",
	}
}

func TestMatch_CompleteProfiles(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.Match(context.Background(), fullCandidate(), fullJob())
	require.NoError(t, err)
	require.NotNil(t, result)

	// 必备技能全中，加分技能命中docker
	assert.Equal(t, 100.0, result.ComponentScores.SkillsMatch)
	// 级别一致且年限在区间内
	assert.Equal(t, 100.0, result.ComponentScores.ExperienceMatch)
	assert.Equal(t, 100.0, result.ComponentScores.EducationMatch)
	assert.Equal(t, 100.0, result.ComponentScores.RequirementsCoverage)

	assert.Equal(t, types.MatchExcellent, result.MatchCategory)
	assert.GreaterOrEqual(t, result.OverallScore, 85.0)
	assert.Equal(t, 80.0, result.ConfidenceScore)

	// 无关键缺口时给正向建议
	require.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Recommendations[0], "Good fit")

	assert.Equal(t, "1.0", result.Metadata.ScoringVersion)
	assert.WithinDuration(t, time.Now(), result.Metadata.MatchedAt, time.Minute)
}

// TestMatch_Deterministic 相同输入重复调用得到完全一致的结果(时间戳除外)
func TestMatch_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	first, err := e.Match(ctx, fullCandidate(), fullJob())
	require.NoError(t, err)
	second, err := e.Match(ctx, fullCandidate(), fullJob())
	require.NoError(t, err)

	first.Metadata.MatchedAt = time.Time{}
	second.Metadata.MatchedAt = time.Time{}
	assert.Equal(t, first, second)
}

// TestMatch_ReorderingInvariance 输入序列重排不改变任何分数
func TestMatch_ReorderingInvariance(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	base, err := e.Match(ctx, fullCandidate(), fullJob())
	require.NoError(t, err)

	shuffledCandidate := fullCandidate()
	shuffledCandidate.Skills.Technical = []string{"Docker", "Redis", "Go", "MySQL"}
	shuffledCandidate.Experience = []types.ExperienceEntry{
		shuffledCandidate.Experience[1], shuffledCandidate.Experience[0],
	}
	shuffledJob := fullJob()
	shuffledJob.RequiredSkills = []string{"redis", "go", "mysql"}

	reordered, err := e.Match(ctx, shuffledCandidate, shuffledJob)
	require.NoError(t, err)

	assert.Equal(t, base.ComponentScores, reordered.ComponentScores)
	assert.Equal(t, base.OverallScore, reordered.OverallScore)
	assert.Equal(t, base.MatchCategory, reordered.MatchCategory)
}

// TestMatch_Bounds 各子分数与总分都在[0,100]，置信分在[50,100]
func TestMatch_Bounds(t *testing.T) {
	e := newTestEngine(t)

	// 极弱匹配的输入
	candidate := &types.CandidateProfile{
		PersonalInfo: &types.PersonalInfo{Name: "x", Location: "Hamburg"},
		Experience:   []types.ExperienceEntry{{Title: "intern"}},
		Skills:       types.SkillSet{Soft: []string{"patience"}},
		Education:    []types.EducationEntry{{Degree: "certificate"}},
	}
	job := &types.JobProfile{
		RequiredSkills:     []string{"go", "rust", "haskell"},
		ExperienceLevel:    "expert",
		YearsExperienceMin: 12,
		Education:          []string{"phd in computer science"},
		Responsibilities:   []string{"design compilers"},
		Location:           "Berlin",
	}

	result, err := e.Match(context.Background(), candidate, job)
	require.NoError(t, err)

	for _, score := range []float64{
		result.ComponentScores.SkillsMatch,
		result.ComponentScores.ExperienceMatch,
		result.ComponentScores.EducationMatch,
		result.ComponentScores.RequirementsCoverage,
		result.ComponentScores.CulturalFit,
		result.OverallScore,
	} {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
	assert.GreaterOrEqual(t, result.ConfidenceScore, 50.0)
	assert.LessOrEqual(t, result.ConfidenceScore, 100.0)
}

// TestMatch_ValidationErrors 缺失必填字段时快速失败，不做任何评分
func TestMatch_ValidationErrors(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Match(ctx, nil, fullJob())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Match(ctx, fullCandidate(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// 候选人缺personal_info与skills
	_, err = e.Match(ctx, &types.CandidateProfile{Experience: []types.ExperienceEntry{{}}, Education: []types.EducationEntry{{}}}, fullJob())
	assert.ErrorIs(t, err, ErrInvalidInput)

	// 岗位缺required_skills
	incomplete := fullJob()
	incomplete.RequiredSkills = nil
	_, err = e.Match(ctx, fullCandidate(), incomplete)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestMatch_GapCascade 弱匹配输入产生完整的缺口与建议级联
func TestMatch_GapCascade(t *testing.T) {
	e := newTestEngine(t)

	candidate := fullCandidate()
	candidate.Skills.Technical = []string{"go"}
	candidate.YearsExperience = 1
	candidate.Experience = candidate.Experience[:1]

	job := fullJob()
	job.YearsExperienceMin = 5

	result, err := e.Match(context.Background(), candidate, job)
	require.NoError(t, err)

	// 缺经验年限 + 缺mysql/redis
	assert.Contains(t, result.Gaps.CriticalGaps, "Insufficient years of experience")
	assert.Contains(t, result.Gaps.CriticalGaps, "Missing critical skill: mysql")
	assert.Equal(t, []string{"mysql", "redis"}, result.Gaps.SkillGaps)
	require.Len(t, result.Gaps.ExperienceGaps, 1)
	assert.Equal(t, "critical", result.Gaps.ExperienceGaps[0].Severity)

	// 建议级联: 关键缺口 → 技能学习(最多2条) → 经验积累，封顶5条
	require.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Recommendations[0], "Immediately address")
	assert.LessOrEqual(t, len(result.Recommendations), 5)
}

func TestCategorizeMatch(t *testing.T) {
	assert.Equal(t, types.MatchExcellent, categorizeMatch(100))
	assert.Equal(t, types.MatchExcellent, categorizeMatch(85))
	assert.Equal(t, types.MatchStrong, categorizeMatch(84.99))
	assert.Equal(t, types.MatchStrong, categorizeMatch(75))
	assert.Equal(t, types.MatchGood, categorizeMatch(74.99))
	assert.Equal(t, types.MatchGood, categorizeMatch(60))
	assert.Equal(t, types.MatchModerate, categorizeMatch(59.99))
	assert.Equal(t, types.MatchModerate, categorizeMatch(40))
	assert.Equal(t, types.MatchWeak, categorizeMatch(39.99))
	assert.Equal(t, types.MatchWeak, categorizeMatch(0))
}

// TestCalculateConfidence 置信分按输入完整度扣减，下限50
func TestCalculateConfidence(t *testing.T) {
	full := fullCandidate()
	job := fullJob()
	assert.Equal(t, 80.0, calculateConfidence(full, job))

	// 缺经历-10
	noExp := fullCandidate()
	noExp.Experience = nil
	assert.Equal(t, 70.0, calculateConfidence(noExp, job))

	// 缺经历-10、缺技术技能-15、岗位无必备技能-20 → 35，触发下限50
	bare := fullCandidate()
	bare.Experience = nil
	bare.Skills.Technical = nil
	noReq := fullJob()
	noReq.RequiredSkills = nil
	assert.Equal(t, 50.0, calculateConfidence(bare, noReq))
}

// TestNewEngine_RejectsBadWeights 权重总和偏离1.0时拒绝构造
func TestNewEngine_RejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.SkillsMatch = 0.5 // 总和变成1.15

	_, err := NewEngine(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "权重")

	cfg = DefaultConfig()
	cfg.Weights.BonusFactors = -0.05
	cfg.Weights.SkillsMatch = 0.45
	_, err = NewEngine(cfg)
	require.Error(t, err)
}

func TestIdentifyStrengths(t *testing.T) {
	skills := types.SkillsDetails{
		MatchedRequired:  []string{"go", "mysql", "redis"},
		MatchedPreferred: []string{"docker"},
		ExtraSkills:      []string{"kafka"},
	}
	experience := types.ExperienceDetails{
		CandidateYears:      6,
		LevelAlignmentScore: 100,
	}

	strengths := identifyStrengths(skills, experience)
	assert.Contains(t, strengths, "Strong skills alignment")
	assert.Contains(t, strengths, "Additional valuable skills")
	assert.Contains(t, strengths, "Nice-to-have skills match")
	assert.Contains(t, strengths, "Extensive experience")
	assert.Contains(t, strengths, "Experience level alignment")

	assert.Empty(t, identifyStrengths(types.SkillsDetails{}, types.ExperienceDetails{}))
}
