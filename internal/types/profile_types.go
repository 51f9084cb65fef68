package types

import "strings"

// PersonalInfo 候选人基本信息。除location外其余字段评分引擎不消费，
// 保留它们是为了与上游简历解析器的输出契约保持一致。
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"` // 自由文本，如 "Shanghai, CN" 或 "Remote"
}

// ExperienceEntry 一段工作经历
type ExperienceEntry struct {
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// SkillSet 候选人技能，按类别拆分
type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// EducationEntry 一条教育经历
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"` // 上游可能解析不出，允许为空
}

// Certification 一条证书记录
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`
}

// Project 一条项目经历
type Project struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// OnlinePresence 线上档案链接。引擎只关心是否存在，不校验可达性
type OnlinePresence struct {
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// CandidateProfile 结构化候选人档案，由上游简历解析器提供。
// 匹配调用期间视为不可变。
type CandidateProfile struct {
	PersonalInfo   *PersonalInfo     `json:"personal_info"`
	Experience     []ExperienceEntry `json:"experience"`
	Skills         SkillSet          `json:"skills"`
	Education      []EducationEntry  `json:"education"`
	Certifications []Certification   `json:"certifications,omitempty"`
	Projects       []Project         `json:"projects,omitempty"`
	OnlinePresence OnlinePresence    `json:"online_presence,omitempty"`
	// YearsExperience 上游解析出的精确工作年限。0表示未提供，
	// 此时引擎用经历条数粗略估算。
	YearsExperience float64 `json:"years_experience,omitempty"`
}

// MissingFields 返回缺失的必填顶层字段名。
// JSON反序列化时缺失的键会得到nil切片，以此区分"键不存在"和"空列表"。
func (c *CandidateProfile) MissingFields() []string {
	var missing []string
	if c.PersonalInfo == nil {
		missing = append(missing, "personal_info")
	}
	if c.Experience == nil {
		missing = append(missing, "experience")
	}
	if c.Skills.Technical == nil && c.Skills.Soft == nil {
		missing = append(missing, "skills")
	}
	if c.Education == nil {
		missing = append(missing, "education")
	}
	return missing
}

// JobProfile 结构化岗位画像，由上游JD分析器提供。匹配调用期间视为不可变。
type JobProfile struct {
	Title           string   `json:"title,omitempty"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`
	// ExperienceLevel 取值 entry/mid/senior/expert。
	// 上游可能给出任意字符串，引擎对无法识别的值按中性分处理，不报错。
	ExperienceLevel    string   `json:"experience_level"`
	YearsExperienceMin float64  `json:"years_experience_min,omitempty"`
	YearsExperienceMax float64  `json:"years_experience_max,omitempty"` // 0表示未给出上限
	Education          []string `json:"education,omitempty"`
	Responsibilities   []string `json:"responsibilities"`
	Qualifications     []string `json:"qualifications,omitempty"`
	Location           string   `json:"location,omitempty"` // 自由文本，或 "Remote"/"Hybrid"
}

// MissingFields 返回缺失的必填顶层字段名
func (j *JobProfile) MissingFields() []string {
	var missing []string
	if j.RequiredSkills == nil {
		missing = append(missing, "required_skills")
	}
	if j.ExperienceLevel == "" {
		missing = append(missing, "experience_level")
	}
	if j.Responsibilities == nil {
		missing = append(missing, "responsibilities")
	}
	return missing
}

// Normalize 把岗位侧技能统一成小写并去掉首尾空白。
// 引擎内部只对候选人技能做归一化，岗位侧技能按原样参与集合比较，
// 因此调用方必须在匹配前调用本方法，否则大小写差异会导致漏配。
func (j *JobProfile) Normalize() {
	j.RequiredSkills = normalizeSkillList(j.RequiredSkills)
	j.PreferredSkills = normalizeSkillList(j.PreferredSkills)
}

func normalizeSkillList(skills []string) []string {
	if skills == nil {
		return nil
	}
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
