package config

import (
	"net"
	"net/url"
	"strconv"
)

// GeminiConfig 는 Gemini 모델 설정이다.
type GeminiConfig struct {
	APIKeys         []string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	TimeoutSeconds  int
}

// PrimaryKey 는 기본 API 키를 반환한다.
func (g GeminiConfig) PrimaryKey() string {
	if len(g.APIKeys) == 0 {
		return ""
	}
	return g.APIKeys[0]
}

// OriginalityConfig 는 독창성 검사 설정이다.
type OriginalityConfig struct {
	MinTextLength int
}

// PaperConfig 는 논문 생성 입력 범위 설정이다.
type PaperConfig struct {
	MinWordCount     int
	MaxWordCount     int
	DefaultWordCount int
}

// LoggingConfig 는 로깅 설정이다.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// HTTPConfig 는 HTTP 서버 설정이다.
type HTTPConfig struct {
	Host         string
	Port         int
	HTTP2Enabled bool
}

// AuthConfig 는 사용자 토큰 검증 설정이다.
// 호스팅 인증 서비스가 발급한 HS256 액세스 토큰을 공유 시크릿으로 검증한다.
type AuthConfig struct {
	JWTSecret string
}

// CORSConfig 는 브라우저 프론트엔드 CORS 설정이다.
type CORSConfig struct {
	AllowedOrigins []string
}

// HTTPRateLimitConfig 는 요청 제한 설정이다.
type HTTPRateLimitConfig struct {
	RequestsPerMinute int
	CacheSize         int
	CacheTTLSeconds   int
}

// DatabaseConfig 는 DB 연결 설정이다.
type DatabaseConfig struct {
	Host                   string
	Port                   int
	Name                   string
	User                   string
	Password               string
	MinPool                int
	MaxPool                int
	ConnMaxLifetimeMinutes int
	ConnMaxIdleTimeMinutes int
}

// DSN 은 DB 접속 문자열을 반환한다.
func (d DatabaseConfig) DSN() string {
	host := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	u := &url.URL{
		Scheme: "postgresql",
		Host:   host,
		Path:   "/" + d.Name,
	}
	if d.Password == "" {
		u.User = url.User(d.User)
	} else {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String()
}

// Config 는 애플리케이션 전체 설정이다.
type Config struct {
	Gemini        GeminiConfig
	Originality   OriginalityConfig
	Paper         PaperConfig
	Logging       LoggingConfig
	HTTP          HTTPConfig
	Auth          AuthConfig
	CORS          CORSConfig
	HTTPRateLimit HTTPRateLimitConfig
	Database      DatabaseConfig
}
