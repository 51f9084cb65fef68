package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"hr-agent-go/internal/config"
	"hr-agent-go/internal/storage/models"
	"hr-agent-go/internal/tracing"
	"hr-agent-go/internal/types"
)

var mysqlTracer = otel.Tracer("hr-agent-go/storage/mysql")

// ErrNotFound 按主键查询未命中。
var ErrNotFound = errors.New("storage: record not found")

// MySQL 封装 GORM 连接, 提供档案与匹配结果的持久化操作。
type MySQL struct {
	db *gorm.DB
}

// NewMySQL 建立连接池并自动迁移表结构。
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	logLevel := gormlogger.Warn
	if cfg.LogLevel >= 1 && cfg.LogLevel <= 4 {
		logLevel = gormlogger.LogLevel(cfg.LogLevel)
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层sql.DB失败: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 50
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	lifetime := time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err := db.AutoMigrate(
		&models.CandidateDoc{},
		&models.JobDoc{},
		&models.MatchRecord{},
	); err != nil {
		return nil, fmt.Errorf("自动迁移表结构失败: %w", err)
	}

	return &MySQL{db: db}, nil
}

// DB 暴露底层 *gorm.DB, 供测试与运维工具使用。
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveCandidate 写入候选人档案, 返回生成或沿用的候选人ID。
// id 为空时生成新UUID; 非空时按主键 upsert。
func (m *MySQL) SaveCandidate(ctx context.Context, id string, profile *types.CandidateProfile) (string, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.SaveCandidate")
	defer span.End()

	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return "", fmt.Errorf("序列化候选人档案失败: %w", err)
	}

	doc := models.CandidateDoc{
		CandidateID: id,
		ProfileJSON: raw,
	}
	if profile.PersonalInfo != nil {
		doc.Name = profile.PersonalInfo.Name
		doc.Location = profile.PersonalInfo.Location
	}

	err = m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "candidate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "location", "profile_json", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return "", fmt.Errorf("保存候选人档案失败: %w", err)
	}
	span.SetAttributes(attribute.String("candidate_id", id))
	return id, nil
}

// GetCandidate 按ID加载候选人档案。未命中返回 ErrNotFound。
func (m *MySQL) GetCandidate(ctx context.Context, id string) (*types.CandidateProfile, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.GetCandidate")
	defer span.End()

	var doc models.CandidateDoc
	err := m.db.WithContext(ctx).Where("candidate_id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("查询候选人档案失败: %w", err)
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal(doc.ProfileJSON, &profile); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("反序列化候选人档案失败: %w", err)
	}
	return &profile, nil
}

// ListCandidates 加载一批候选人档案。ids 为空时加载全量。
// 返回保持稳定顺序的 (id, profile) 列表, 供排名批处理使用。
func (m *MySQL) ListCandidates(ctx context.Context, ids []string) ([]CandidateRow, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.ListCandidates")
	defer span.End()

	query := m.db.WithContext(ctx).Model(&models.CandidateDoc{}).Order("candidate_id ASC")
	if len(ids) > 0 {
		query = query.Where("candidate_id IN ?", ids)
	}

	var docs []models.CandidateDoc
	if err := query.Find(&docs).Error; err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("查询候选人列表失败: %w", err)
	}

	rows := make([]CandidateRow, 0, len(docs))
	for _, doc := range docs {
		var profile types.CandidateProfile
		if err := json.Unmarshal(doc.ProfileJSON, &profile); err != nil {
			// 单条脏数据不应中断整批排名
			continue
		}
		rows = append(rows, CandidateRow{ID: doc.CandidateID, Profile: &profile})
	}
	span.SetAttributes(attribute.Int("candidate_count", len(rows)))
	return rows, nil
}

// CandidateRow 排名批处理的输入单元。
type CandidateRow struct {
	ID      string
	Profile *types.CandidateProfile
}

// SaveJob 写入职位画像, 语义同 SaveCandidate。
func (m *MySQL) SaveJob(ctx context.Context, id string, profile *types.JobProfile) (string, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.SaveJob")
	defer span.End()

	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return "", fmt.Errorf("序列化职位画像失败: %w", err)
	}

	doc := models.JobDoc{
		JobID:       id,
		JobTitle:    profile.Title,
		Location:    profile.Location,
		Status:      "ACTIVE",
		ProfileJSON: raw,
	}
	err = m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"job_title", "location", "profile_json", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return "", fmt.Errorf("保存职位画像失败: %w", err)
	}
	span.SetAttributes(attribute.String("job_id", id))
	return id, nil
}

// GetJob 按ID加载职位画像。未命中返回 ErrNotFound。
func (m *MySQL) GetJob(ctx context.Context, id string) (*types.JobProfile, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.GetJob")
	defer span.End()

	var doc models.JobDoc
	err := m.db.WithContext(ctx).Where("job_id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("查询职位画像失败: %w", err)
	}

	var profile types.JobProfile
	if err := json.Unmarshal(doc.ProfileJSON, &profile); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("反序列化职位画像失败: %w", err)
	}
	return &profile, nil
}

// SaveMatchRecord 落库一次匹配结果。同一 (candidate, job) 覆盖旧记录。
func (m *MySQL) SaveMatchRecord(ctx context.Context, candidateID, jobID string, result *types.MatchResult) error {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.SaveMatchRecord")
	defer span.End()

	components, err := json.Marshal(result.ComponentScores)
	if err != nil {
		return fmt.Errorf("序列化分项得分失败: %w", err)
	}
	gaps, err := json.Marshal(result.Gaps)
	if err != nil {
		return fmt.Errorf("序列化差距分析失败: %w", err)
	}
	recs, err := json.Marshal(result.Recommendations)
	if err != nil {
		return fmt.Errorf("序列化建议列表失败: %w", err)
	}

	record := models.MatchRecord{
		CandidateID:         candidateID,
		JobID:               jobID,
		OverallScore:        result.OverallScore,
		MatchCategory:       string(result.MatchCategory),
		ConfidenceScore:     result.ConfidenceScore,
		ComponentScoresJSON: components,
		GapsJSON:            gaps,
		RecommendationsJSON: recs,
		ScoringVersion:      result.Metadata.ScoringVersion,
		MatchedAt:           result.Metadata.MatchedAt,
	}
	err = m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "candidate_id"}, {Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"overall_score", "match_category", "confidence_score",
			"component_scores_json", "gaps_json", "recommendations_json",
			"scoring_version", "matched_at", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return fmt.Errorf("保存匹配记录失败: %w", err)
	}
	return nil
}

// TopMatchesForJob 按总分降序取某职位的历史匹配记录。
func (m *MySQL) TopMatchesForJob(ctx context.Context, jobID string, limit int) ([]models.MatchRecord, error) {
	ctx, span := mysqlTracer.Start(ctx, "MySQL.TopMatchesForJob")
	defer span.End()

	var records []models.MatchRecord
	err := m.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("overall_score DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("查询职位匹配记录失败: %w", err)
	}
	return records, nil
}
