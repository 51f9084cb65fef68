package matcher

import (
	"strings"

	"hr-agent-go/internal/types"
)

// buildNarrative 把候选人档案拼成一段小写叙述文本，供关键词类评估器使用。
// 组成: 个人头衔 + 全部工作成就 + 全部技能 + 全部项目描述。
// 各评估器都在这段文本上做子串测试，所以这里统一转小写一次。
func buildNarrative(c *types.CandidateProfile) string {
	var parts []string

	if c.PersonalInfo != nil && c.PersonalInfo.Title != "" {
		parts = append(parts, c.PersonalInfo.Title)
	}

	for _, exp := range c.Experience {
		parts = append(parts, exp.Achievements...)
	}

	parts = append(parts, c.Skills.Technical...)
	parts = append(parts, c.Skills.Soft...)

	for _, p := range c.Projects {
		if p.Description != "" {
			parts = append(parts, p.Description)
		}
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// keywordTokens 把一段文本切成小写token并剔除停用词
func keywordTokens(text string, stopWords map[string]struct{}) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if _, isStop := stopWords[tok]; isStop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// countKeywordsPresent 统计keywords中有多少个以子串形式出现在text里。
// 统计的是命中的关键词个数，不是出现次数。
func countKeywordsPresent(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

// normalizeSkillSet 候选人技能归一化: 小写、去首尾空白、去重。
// 返回集合与保持首次出现顺序的列表，保证输出明细的顺序确定。
func normalizeSkillSet(groups ...[]string) (map[string]struct{}, []string) {
	set := make(map[string]struct{})
	var ordered []string
	for _, group := range groups {
		for _, s := range group {
			norm := strings.ToLower(strings.TrimSpace(s))
			if norm == "" {
				continue
			}
			if _, seen := set[norm]; !seen {
				set[norm] = struct{}{}
				ordered = append(ordered, norm)
			}
		}
	}
	return set, ordered
}

// toSet 把字符串列表转成集合(不做归一化，岗位侧技能由调用方预先归一化)
func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}

// round2 保留两位小数
func round2(v float64) float64 {
	if v >= 0 {
		return float64(int64(v*100+0.5)) / 100
	}
	return float64(int64(v*100-0.5)) / 100
}

// round1 保留一位小数
func round1(v float64) float64 {
	if v >= 0 {
		return float64(int64(v*10+0.5)) / 10
	}
	return float64(int64(v*10-0.5)) / 10
}
