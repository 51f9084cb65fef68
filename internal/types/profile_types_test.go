package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCandidateProfileMissingFields 必填字段缺失检测:
// 区分"键不存在"(nil切片)与"键存在但为空列表"(空切片)
func TestCandidateProfileMissingFields(t *testing.T) {
	c := &CandidateProfile{}
	missing := c.MissingFields()
	assert.ElementsMatch(t, []string{"personal_info", "experience", "skills", "education"}, missing)

	// 显式的空列表是合法输入，不算缺失
	var fromJSON CandidateProfile
	raw := `{"personal_info":{"name":"x"},"experience":[],"skills":{"technical":[],"soft":[]},"education":[]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &fromJSON))
	assert.Empty(t, fromJSON.MissingFields())

	// skills键整体缺失才算缺
	raw = `{"personal_info":{"name":"x"},"experience":[],"education":[]}`
	fromJSON = CandidateProfile{}
	require.NoError(t, json.Unmarshal([]byte(raw), &fromJSON))
	assert.Equal(t, []string{"skills"}, fromJSON.MissingFields())
}

func TestJobProfileMissingFields(t *testing.T) {
	j := &JobProfile{}
	missing := j.MissingFields()
	assert.ElementsMatch(t, []string{"required_skills", "experience_level", "responsibilities"}, missing)

	var fromJSON JobProfile
	raw := `{"required_skills":[],"experience_level":"senior","responsibilities":[]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &fromJSON))
	assert.Empty(t, fromJSON.MissingFields())
}

// TestJobProfileNormalize 岗位侧技能统一小写去空白
func TestJobProfileNormalize(t *testing.T) {
	j := &JobProfile{
		RequiredSkills:  []string{" Go ", "MySQL"},
		PreferredSkills: []string{"Docker  "},
	}
	j.Normalize()

	assert.Equal(t, []string{"go", "mysql"}, j.RequiredSkills)
	assert.Equal(t, []string{"docker"}, j.PreferredSkills)
}
