package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-agent-go/internal/types"
)

// TestScoreCulture_Neutral 无任何信号时停在中性分50
func TestScoreCulture_Neutral(t *testing.T) {
	e := newTestEngine(t)

	score, details := e.scoreCulture(&types.CandidateProfile{}, &types.JobProfile{}, "plain text")

	assert.Equal(t, 50.0, score)
	assert.Empty(t, details.Indicators)
}

// TestScoreCulture_LeadershipSignals 领导力关键词分档加分
func TestScoreCulture_LeadershipSignals(t *testing.T) {
	e := newTestEngine(t)
	c := &types.CandidateProfile{}
	j := &types.JobProfile{}

	// 超过2个关键词: strong +15
	score, details := e.scoreCulture(c, j, "lead a team and mentor junior engineers")
	assert.Equal(t, 65.0, score)
	assert.Equal(t, "strong", details.Indicators["leadership_experience"])

	// 1-2个关键词: moderate +5
	score, details = e.scoreCulture(c, j, "helped mentor an intern")
	assert.Equal(t, 55.0, score)
	assert.Equal(t, "moderate", details.Indicators["leadership_experience"])
}

// TestScoreCulture_GrowthSignals 成长导向关键词需要至少2个才加分
func TestScoreCulture_GrowthSignals(t *testing.T) {
	e := newTestEngine(t)
	c := &types.CandidateProfile{}
	j := &types.JobProfile{}

	score, details := e.scoreCulture(c, j, "worked at a startup in an agile environment")
	assert.Equal(t, 60.0, score)
	assert.Equal(t, "high", details.Indicators["growth_orientation"])

	// 只有1个关键词不加分
	score, details = e.scoreCulture(c, j, "worked at a startup")
	assert.Equal(t, 50.0, score)
	assert.NotContains(t, details.Indicators, "growth_orientation")
}

// TestScoreCulture_Location 地点兼容±(只有双方都有地点才参与)
func TestScoreCulture_Location(t *testing.T) {
	e := newTestEngine(t)

	c := &types.CandidateProfile{
		PersonalInfo: &types.PersonalInfo{Location: "Berlin, Germany"},
	}

	// 城市一致 +10
	score, details := e.scoreCulture(c, &types.JobProfile{Location: "berlin, germany"}, "x")
	assert.Equal(t, 60.0, score)
	assert.Equal(t, "compatible", details.Indicators["location_flexibility"])

	// 不兼容 -5
	score, details = e.scoreCulture(c, &types.JobProfile{Location: "Munich, Germany"}, "x")
	assert.Equal(t, 45.0, score)
	assert.Equal(t, "incompatible", details.Indicators["location_flexibility"])

	// 远程岗位视为兼容
	score, _ = e.scoreCulture(c, &types.JobProfile{Location: "Remote"}, "x")
	assert.Equal(t, 60.0, score)

	// 候选人无地点时不参与打分
	score, details = e.scoreCulture(&types.CandidateProfile{}, &types.JobProfile{Location: "Berlin"}, "x")
	assert.Equal(t, 50.0, score)
	assert.NotContains(t, details.Indicators, "location_flexibility")
}

func TestLocationsCompatible(t *testing.T) {
	assert.True(t, locationsCompatible("Berlin, Germany", "Remote"))
	assert.True(t, locationsCompatible("Remote worker", "Berlin"))
	assert.True(t, locationsCompatible("Berlin, Germany", "Berlin, DE"))
	assert.True(t, locationsCompatible("berlin", "BERLIN"))
	assert.False(t, locationsCompatible("Hamburg", "Berlin"))
}
