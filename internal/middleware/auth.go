package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/httperror"
)

const userIDKey = "user_id"

// UserIdentity 는 HS256 액세스 토큰을 검증해 사용자 ID를 컨텍스트에 싣는
// 미들웨어다. 토큰이 없는 요청은 익명으로 통과시키고, 제시된 토큰이
// 유효하지 않으면 거부한다.
func UserIdentity(cfg *config.Config) gin.HandlerFunc {
	secret := ""
	if cfg != nil {
		secret = strings.TrimSpace(cfg.Auth.JWTSecret)
	}

	return func(c *gin.Context) {
		raw := extractBearerToken(c)
		if raw == "" {
			c.Next()
			return
		}

		if secret == "" {
			// 시크릿 미설정 상태에서 토큰이 오면 신원을 검증할 방법이 없다.
			abortUnauthorized(c, "Token verification is not configured")
			return
		}

		token, err := jwt.Parse(
			[]byte(raw),
			jwt.WithKey(jwa.HS256, []byte(secret)),
			jwt.WithValidate(true),
		)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		subject := strings.TrimSpace(token.Subject())
		if subject == "" {
			abortUnauthorized(c, "Access token has no subject")
			return
		}

		c.Set(userIDKey, subject)
		c.Next()
	}
}

// RequireUser 는 인증된 사용자만 허용하는 미들웨어다.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}
		c.Next()
	}
}

// GetUserID: 컨텍스트의 인증된 사용자 ID를 반환합니다. 익명이면 빈 문자열입니다.
func GetUserID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	value, ok := c.Get(userIDKey)
	if !ok {
		return ""
	}
	userID, ok := value.(string)
	if !ok {
		return ""
	}
	return userID
}

func extractBearerToken(c *gin.Context) string {
	authValue := strings.TrimSpace(c.GetHeader("Authorization"))
	if authValue == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(authValue), "bearer ") {
		return strings.TrimSpace(authValue[7:])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	status, payload := httperror.Response(httperror.NewUnauthorized(message), GetRequestID(c))
	c.AbortWithStatusJSON(status, payload)
}
