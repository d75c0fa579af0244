package store

import (
	"time"

	"github.com/park285/paperforge-go/internal/paper"
)

// PaperRecord 는 저장된 논문 DB 모델이다.
// 목록 배열 필드는 JSONB 컬럼으로 직렬화한다.
type PaperRecord struct {
	ID            string    `gorm:"column:id;primaryKey"`
	UserID        string    `gorm:"column:user_id;index"`
	Topic         string    `gorm:"column:topic"`
	CitationStyle string    `gorm:"column:citation_style"`
	Title         string    `gorm:"column:title"`
	Abstract      string    `gorm:"column:abstract"`
	Keywords      []string  `gorm:"column:keywords;type:jsonb;serializer:json"`
	Introduction  string    `gorm:"column:introduction"`
	Methodology   string    `gorm:"column:methodology"`
	Results       string    `gorm:"column:results"`
	Discussion    string    `gorm:"column:discussion"`
	Conclusion    string    `gorm:"column:conclusion"`
	References    []string  `gorm:"column:refs;type:jsonb;serializer:json"`
	WordCount     int       `gorm:"column:word_count"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName 은 GORM에서 사용할 테이블명을 반환한다.
func (PaperRecord) TableName() string {
	return "papers"
}

// Content 는 레코드의 본문을 도메인 값 객체로 변환한다.
func (r PaperRecord) Content() *paper.Paper {
	return &paper.Paper{
		Title:        r.Title,
		Abstract:     r.Abstract,
		Keywords:     r.Keywords,
		Introduction: r.Introduction,
		Methodology:  r.Methodology,
		Results:      r.Results,
		Discussion:   r.Discussion,
		Conclusion:   r.Conclusion,
		References:   r.References,
		WordCount:    r.WordCount,
	}
}

// Summary 는 목록 응답용 축약 뷰 모델이다.
type Summary struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	CitationStyle string    `json:"citation_style"`
	Title         string    `json:"title"`
	Abstract      string    `json:"abstract"`
	WordCount     int       `json:"word_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summarize 는 레코드를 목록용 뷰로 변환한다.
func (r PaperRecord) Summarize() Summary {
	return Summary{
		ID:            r.ID,
		Topic:         r.Topic,
		CitationStyle: r.CitationStyle,
		Title:         r.Title,
		Abstract:      r.Abstract,
		WordCount:     r.WordCount,
		CreatedAt:     r.CreatedAt,
	}
}
