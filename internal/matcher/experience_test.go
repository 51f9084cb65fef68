package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-agent-go/internal/types"
)

func TestParseExperienceLevel(t *testing.T) {
	tests := []struct {
		input string
		want  ExperienceLevel
	}{
		{"entry", LevelEntry},
		{"mid", LevelMid},
		{"senior", LevelSenior},
		{"expert", LevelExpert},
		{"  Senior  ", LevelSenior},
		{"principal", LevelUnknown},
		{"", LevelUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseExperienceLevel(tt.input), "input=%q", tt.input)
	}
}

func TestLevelForYears(t *testing.T) {
	assert.Equal(t, LevelEntry, levelForYears(0))
	assert.Equal(t, LevelEntry, levelForYears(1.9))
	assert.Equal(t, LevelMid, levelForYears(2))
	assert.Equal(t, LevelSenior, levelForYears(5))
	assert.Equal(t, LevelExpert, levelForYears(10))
	assert.Equal(t, LevelExpert, levelForYears(25))
}

// TestEstimateYears 上游精确年限优先，否则按经历条数粗估
func TestEstimateYears(t *testing.T) {
	// 有精确年限直接采用
	c := &types.CandidateProfile{
		YearsExperience: 7.5,
		Experience:      []types.ExperienceEntry{{Title: "dev"}},
	}
	assert.Equal(t, 7.5, estimateYears(c))

	// 无经历、无年限
	assert.Equal(t, 0.0, estimateYears(&types.CandidateProfile{}))

	// 按条数粗估: 每段1.5年
	c = &types.CandidateProfile{
		Experience: []types.ExperienceEntry{{Title: "a"}, {Title: "b"}},
	}
	assert.Equal(t, 3.0, estimateYears(c))

	// 单段经历也不低于0.5年
	c = &types.CandidateProfile{Experience: []types.ExperienceEntry{{Title: "a"}}}
	assert.Equal(t, 1.5, estimateYears(c))
}

func TestScoreYearsFit(t *testing.T) {
	// 不足: 每缺一年-20，下限20
	assert.Equal(t, 20.0, scoreYearsFit(1, 5, 8))
	assert.Equal(t, 80.0, scoreYearsFit(4, 5, 8))

	// 在区间内满分
	assert.Equal(t, 100.0, scoreYearsFit(5, 5, 8))
	assert.Equal(t, 100.0, scoreYearsFit(8, 5, 8))

	// 超出: 每年-1，下限60
	assert.Equal(t, 96.0, scoreYearsFit(12, 5, 8))
	assert.Equal(t, 60.0, scoreYearsFit(60, 5, 8))

	// 未给出上限时不做超出惩罚
	assert.Equal(t, 100.0, scoreYearsFit(30, 5, 0))
}

func TestScoreLevelAlignment(t *testing.T) {
	assert.Equal(t, 100.0, scoreLevelAlignment(LevelSenior, LevelSenior))
	assert.Equal(t, 70.0, scoreLevelAlignment(LevelMid, LevelSenior))
	assert.Equal(t, 70.0, scoreLevelAlignment(LevelExpert, LevelSenior))
	assert.Equal(t, 30.0, scoreLevelAlignment(LevelEntry, LevelSenior))
	assert.Equal(t, 30.0, scoreLevelAlignment(LevelEntry, LevelExpert))
	// 岗位级别无法识别时走中性分
	assert.Equal(t, 50.0, scoreLevelAlignment(LevelSenior, LevelUnknown))
}

// TestScoreExperience_Average 经验分是级别对齐分与年限适配分的算术平均
func TestScoreExperience_Average(t *testing.T) {
	e := newTestEngine(t)

	c := &types.CandidateProfile{YearsExperience: 6}
	j := &types.JobProfile{
		ExperienceLevel:    "senior",
		YearsExperienceMin: 5,
		YearsExperienceMax: 8,
	}

	score, details := e.scoreExperience(c, j)

	// 级别一致100 + 年限区间内100
	assert.Equal(t, 100.0, score)
	assert.Equal(t, "senior", details.CandidateLevel)
	assert.Equal(t, 6.0, details.CandidateYears)

	// 级别相邻时: (70+100)/2
	c.YearsExperience = 12
	j.YearsExperienceMax = 0
	j.YearsExperienceMin = 5
	score, details = e.scoreExperience(c, j)
	assert.Equal(t, 85.0, score)
	assert.Equal(t, "expert", details.CandidateLevel)
}
