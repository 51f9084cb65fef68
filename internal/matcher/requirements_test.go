package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-agent-go/internal/types"
)

// TestScoreRequirements_Empty 没有任何职责与任职要求时按完全覆盖处理
func TestScoreRequirements_Empty(t *testing.T) {
	e := newTestEngine(t)

	score, details := e.scoreRequirements(&types.JobProfile{}, "anything")

	assert.Equal(t, 100.0, score)
	assert.Equal(t, 0, details.TotalRequirements)
	assert.Equal(t, 1.0, details.CoverageRate)
}

// TestScoreRequirements_PartialCoverage 命中任一关键词即整条记满
func TestScoreRequirements_PartialCoverage(t *testing.T) {
	e := newTestEngine(t)

	j := &types.JobProfile{
		Responsibilities: []string{
			"Build scalable microservices",
			"Operate blockchain infrastructure",
		},
		Qualifications: []string{
			"Experience with kubernetes clusters",
			"Fluency in klingon",
		},
	}
	narrative := "built microservices on kubernetes for payments platform"

	score, details := e.scoreRequirements(j, narrative)

	assert.Equal(t, 50.0, score)
	assert.Equal(t, 4, details.TotalRequirements)
	assert.Len(t, details.CoveredRequirements, 2)
	assert.Len(t, details.MissedRequirements, 2)
	assert.Equal(t, 0.5, details.CoverageRate)
}

// TestScoreRequirements_StopWordsIgnored 纯停用词的需求不可能被覆盖
func TestScoreRequirements_StopWordsIgnored(t *testing.T) {
	e := newTestEngine(t)

	j := &types.JobProfile{Responsibilities: []string{"and the of with"}}

	score, details := e.scoreRequirements(j, "and the of with everything")

	assert.Equal(t, 0.0, score)
	assert.Equal(t, []string{"and the of with"}, details.MissedRequirements)
}

// TestScoreRequirements_FullCoverage 全部命中时得分恰好100
func TestScoreRequirements_FullCoverage(t *testing.T) {
	e := newTestEngine(t)

	j := &types.JobProfile{
		Responsibilities: []string{"golang services", "redis caching", "mysql schemas"},
	}
	narrative := "golang redis mysql"

	score, details := e.scoreRequirements(j, narrative)
	assert.InDelta(t, 100.0, score, 1e-9)
	assert.Equal(t, 1.0, details.CoverageRate)
}
