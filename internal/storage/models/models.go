package models

import (
	"time"

	"gorm.io/datatypes"
)

// CandidateDoc 候选人档案存储模型。结构化档案整体序列化到 ProfileJSON,
// 顶层列只冗余排序与展示所需字段。
type CandidateDoc struct {
	CandidateID string         `gorm:"type:char(36);primaryKey"`
	Name        string         `gorm:"type:varchar(255);index:idx_candidate_name"`
	Location    string         `gorm:"type:varchar(255)"`
	ProfileJSON datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt   time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt   time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (CandidateDoc) TableName() string {
	return "candidates"
}

// JobDoc 职位画像存储模型。
type JobDoc struct {
	JobID       string         `gorm:"type:char(36);primaryKey"`
	JobTitle    string         `gorm:"type:varchar(255);index:idx_job_title"`
	Location    string         `gorm:"type:varchar(255)"`
	Status      string         `gorm:"type:varchar(20);default:'ACTIVE';index:idx_job_status"`
	ProfileJSON datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt   time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt   time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (JobDoc) TableName() string {
	return "jobs"
}

// MatchRecord 一次候选人-职位匹配的落库结果。
// (CandidateID, JobID) 唯一, 重复匹配按最新结果覆盖。
// idx_mr_job_overall 服务于按职位拉取排名。
type MatchRecord struct {
	MatchID             uint64         `gorm:"primaryKey;autoIncrement"`
	CandidateID         string         `gorm:"type:char(36);not null;uniqueIndex:idx_mr_candidate_job,priority:1"`
	JobID               string         `gorm:"type:char(36);not null;uniqueIndex:idx_mr_candidate_job,priority:2;index:idx_mr_job_overall,priority:1"`
	OverallScore        float64        `gorm:"type:decimal(5,2);not null;index:idx_mr_job_overall,priority:2,sort:desc"`
	MatchCategory       string         `gorm:"type:varchar(32);not null"`
	ConfidenceScore     float64        `gorm:"type:decimal(5,2);not null"`
	ComponentScoresJSON datatypes.JSON `gorm:"type:json"`
	GapsJSON            datatypes.JSON `gorm:"type:json"`
	RecommendationsJSON datatypes.JSON `gorm:"type:json"`
	ScoringVersion      string         `gorm:"type:varchar(16);not null"`
	MatchedAt           time.Time      `gorm:"type:datetime(6);not null"`
	CreatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Candidate *CandidateDoc `gorm:"foreignKey:CandidateID;references:CandidateID"`
	Job       *JobDoc       `gorm:"foreignKey:JobID;references:JobID"`
}

func (MatchRecord) TableName() string {
	return "match_records"
}
