package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-agent-go/internal/types"
)

// TestScoreBonus_AllFactors 各加分项叠加
func TestScoreBonus_AllFactors(t *testing.T) {
	e := newTestEngine(t)

	c := &types.CandidateProfile{
		OnlinePresence: types.OnlinePresence{GitHub: "https://github.com/someone"},
		Certifications: []types.Certification{{Name: "CKA"}, {Name: "AWS SAA"}},
		Projects: []types.Project{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		},
	}
	j := &types.JobProfile{
		Qualifications: []string{"values innovation and quality"},
	}
	narrative := "drove innovation and quality initiatives"

	score, details := e.scoreBonus(c, j, narrative)

	// 线上档案10 + 证书2 + 项目5 + 文化关键词2×2=4
	assert.Equal(t, 21.0, score)
	assert.Equal(t, "verified profiles", details.OnlinePresence)
	assert.Equal(t, "2 certifications", details.Certifications)
	assert.Equal(t, "3 significant projects", details.Projects)
	assert.Equal(t, "2 culture keyword matches", details.CultureKeywords)
	assert.Equal(t, 21.0, details.TotalBonusPoints)
}

// TestScoreBonus_Caps 证书封顶5分，文化关键词封顶5分
func TestScoreBonus_Caps(t *testing.T) {
	e := newTestEngine(t)

	c := &types.CandidateProfile{
		Certifications: make([]types.Certification, 8),
	}
	j := &types.JobProfile{
		Qualifications: []string{"innovation excellence quality collaborative"},
	}
	narrative := "innovation excellence quality collaborative"

	score, _ := e.scoreBonus(c, j, narrative)

	// 证书8张记5分 + 文化关键词4个命中记5分
	assert.Equal(t, 10.0, score)
}

// TestScoreBonus_Empty 没有任何加分项时为0
func TestScoreBonus_Empty(t *testing.T) {
	e := newTestEngine(t)

	score, details := e.scoreBonus(&types.CandidateProfile{}, &types.JobProfile{}, "")

	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0.0, details.TotalBonusPoints)
	assert.Empty(t, details.OnlinePresence)
}

// TestScoreBonus_CultureKeywordsMustMatchBothSides 只出现在一侧的关键词不算
func TestScoreBonus_CultureKeywordsMustMatchBothSides(t *testing.T) {
	e := newTestEngine(t)

	j := &types.JobProfile{Qualifications: []string{"innovation culture"}}

	score, details := e.scoreBonus(&types.CandidateProfile{}, j, "scalable systems")
	assert.Equal(t, 0.0, score)
	assert.Empty(t, details.CultureKeywords)
}
