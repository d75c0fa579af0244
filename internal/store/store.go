package store

import (
	"context"

	"github.com/park285/paperforge-go/internal/paper"
)

// Papers: 논문 저장소 인터페이스입니다.
// 테스트에서 mock 구현을 주입할 수 있도록 합니다.
type Papers interface {
	// Create 생성 결과 저장
	Create(ctx context.Context, userID string, topic string, style paper.Style, content *paper.Paper) (*PaperRecord, error)

	// List 사용자 논문 목록 조회
	List(ctx context.Context, userID string, query ListQuery) ([]Summary, int64, error)

	// Get 단건 조회
	Get(ctx context.Context, userID string, id string) (*PaperRecord, error)

	// Delete 단건 삭제
	Delete(ctx context.Context, userID string, id string) error

	// Ping 연결 상태 점검
	Ping(ctx context.Context) error

	// Close 리소스 정리
	Close()
}

// Repository가 Papers 인터페이스를 구현하는지 컴파일 타임 확인
var _ Papers = (*Repository)(nil)
