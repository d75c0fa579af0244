package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/paper"
)

// ErrNotFound 는 요청한 논문이 없거나 다른 사용자 소유일 때 반환된다.
var ErrNotFound = errors.New("paper not found")

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListQuery 는 목록 조회 조건이다. Search 는 제목·주제 부분 일치 검색어다.
type ListQuery struct {
	Limit  int
	Offset int
	Search string
}

// Repository 는 papers DB 접근을 담당한다.
// 첫 쿼리 시점에 연결을 지연 생성하고 스키마를 보장한다.
type Repository struct {
	cfg    *config.Config
	logger *slog.Logger
	mu     sync.Mutex
	db     *gorm.DB
	sqlDB  *sql.DB
}

// NewRepository 는 논문 저장소를 생성한다.
func NewRepository(cfg *config.Config, logger *slog.Logger) *Repository {
	return &Repository{
		cfg:    cfg,
		logger: logger,
	}
}

// Create 는 생성된 논문을 사용자 소유로 저장하고 레코드를 반환한다.
func (r *Repository) Create(
	ctx context.Context,
	userID string,
	topic string,
	style paper.Style,
	content *paper.Paper,
) (*PaperRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is empty")
	}
	if content == nil {
		return nil, errors.New("paper content is nil")
	}

	db, err := r.getDB(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := PaperRecord{
		ID:            uuid.NewString(),
		UserID:        userID,
		Topic:         topic,
		CitationStyle: string(style),
		Title:         content.Title,
		Abstract:      content.Abstract,
		Keywords:      content.Keywords,
		Introduction:  content.Introduction,
		Methodology:   content.Methodology,
		Results:       content.Results,
		Discussion:    content.Discussion,
		Conclusion:    content.Conclusion,
		References:    content.References,
		WordCount:     content.WordCount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create paper: %w", err)
	}
	return &record, nil
}

// List 는 사용자의 논문 목록과 전체 건수를 최신순으로 조회한다.
func (r *Repository) List(ctx context.Context, userID string, query ListQuery) ([]Summary, int64, error) {
	db, err := r.getDB(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	base := db.WithContext(ctx).Model(&PaperRecord{}).Where("user_id = ?", userID)
	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + search + "%"
		base = base.Where("title ILIKE ? OR topic ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count papers: %w", err)
	}

	var rows []PaperRecord
	if err := base.Order("created_at desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list papers: %w", err)
	}

	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, row.Summarize())
	}
	return summaries, total, nil
}

// Get 은 사용자 소유의 논문 한 건을 조회한다.
func (r *Repository) Get(ctx context.Context, userID string, id string) (*PaperRecord, error) {
	db, err := r.getDB(ctx)
	if err != nil {
		return nil, err
	}

	var row PaperRecord
	result := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, fmt.Errorf("get paper: %w", result.Error)
	}
	return &row, nil
}

// Delete 는 사용자 소유의 논문 한 건을 삭제한다.
func (r *Repository) Delete(ctx context.Context, userID string, id string) error {
	db, err := r.getDB(ctx)
	if err != nil {
		return err
	}

	result := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&PaperRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete paper: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping 은 DB 연결 가능 여부를 확인한다. 준비 상태 점검에 사용한다.
func (r *Repository) Ping(ctx context.Context) error {
	if _, err := r.getDB(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	sqlDB := r.sqlDB
	r.mu.Unlock()
	if sqlDB == nil {
		return errors.New("db handle not initialized")
	}
	return sqlDB.PingContext(ctx)
}

// Close 는 DB 연결을 닫는다.
func (r *Repository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sqlDB == nil {
		return
	}
	_ = r.sqlDB.Close()
	r.sqlDB = nil
	r.db = nil
}

func (r *Repository) getDB(ctx context.Context) (*gorm.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}
	if r.cfg == nil {
		return nil, errors.New("database config is nil")
	}

	hostUsed := r.cfg.Database.Host
	dsn := r.cfg.Database.DSN()
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil && shouldFallbackToLocalhost(err, r.cfg.Database.Host) {
		fallback := r.cfg.Database
		fallback.Host = "127.0.0.1"
		db, err = gorm.Open(postgres.Open(fallback.DSN()), gormCfg)
		if err == nil {
			hostUsed = fallback.Host
			if r.logger != nil {
				r.logger.Warn(
					"papers_db_host_fallback",
					"configured_host", r.cfg.Database.Host,
					"effective_host", hostUsed,
				)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open papers db: %w", err)
	}

	if schemaErr := ensurePapersSchema(db); schemaErr != nil {
		return nil, fmt.Errorf("prepare papers db: %w", schemaErr)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get papers db handle: %w", err)
	}

	sqlDB.SetMaxIdleConns(r.cfg.Database.MinPool)
	sqlDB.SetMaxOpenConns(r.cfg.Database.MaxPool)
	if r.cfg.Database.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(r.cfg.Database.ConnMaxLifetimeMinutes) * time.Minute)
	}
	if r.cfg.Database.ConnMaxIdleTimeMinutes > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(r.cfg.Database.ConnMaxIdleTimeMinutes) * time.Minute)
	}

	if r.logger != nil {
		r.logger.Info("papers_db_connected", "host", hostUsed, "name", r.cfg.Database.Name)
	}

	r.db = db
	r.sqlDB = sqlDB
	return db, nil
}

func ensurePapersSchema(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}

	if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS papers (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL,
				topic TEXT NOT NULL,
				citation_style TEXT NOT NULL DEFAULT 'ieee',
				title TEXT NOT NULL,
				abstract TEXT NOT NULL DEFAULT '',
				keywords JSONB NOT NULL DEFAULT '[]',
				introduction TEXT NOT NULL DEFAULT '',
				methodology TEXT NOT NULL DEFAULT '',
				results TEXT NOT NULL DEFAULT '',
				discussion TEXT NOT NULL DEFAULT '',
				conclusion TEXT NOT NULL DEFAULT '',
				refs JSONB NOT NULL DEFAULT '[]',
				word_count INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`).Error; err != nil {
		return fmt.Errorf("create papers table: %w", err)
	}

	if err := db.Exec(`
			CREATE INDEX IF NOT EXISTS idx_papers_user_created
			ON papers (user_id, created_at DESC)
		`).Error; err != nil {
		return fmt.Errorf("create papers user index: %w", err)
	}

	return nil
}

func shouldFallbackToLocalhost(err error, host string) bool {
	if err == nil {
		return false
	}
	if host == "" || host == "127.0.0.1" || strings.EqualFold(host, "localhost") {
		return false
	}
	if !strings.EqualFold(host, "postgres") {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return strings.EqualFold(dnsErr.Name, host)
	}

	lower := strings.ToLower(err.Error())
	hostLower := strings.ToLower(host)
	if strings.Contains(lower, "lookup "+hostLower) && strings.Contains(lower, "no such host") {
		return true
	}
	return strings.Contains(lower, "no such host") && strings.Contains(lower, hostLower)
}
