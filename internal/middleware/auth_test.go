package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/park285/paperforge-go/internal/config"
)

const testSecret = "test-secret"

func authConfig(secret string) *config.Config {
	return &config.Config{Auth: config.AuthConfig{JWTSecret: secret}}
}

func signToken(t *testing.T, subject string, secret string, expiresIn time.Duration) string {
	t.Helper()
	builder := jwt.NewBuilder().
		IssuedAt(time.Now().Add(-time.Minute)).
		Expiration(time.Now().Add(expiresIn))
	if subject != "" {
		builder = builder.Subject(subject)
	}
	token, err := builder.Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secret)))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return string(signed)
}

func doAuthRequest(t *testing.T, cfg *config.Config, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	router := newTestRouter(RequestID(), UserIdentity(cfg))
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestUserIdentityAnonymous(t *testing.T) {
	recorder := doAuthRequest(t, authConfig(testSecret), "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["user_id"] != "" {
		t.Errorf("user_id = %q, want empty", body["user_id"])
	}
}

func TestUserIdentityValidToken(t *testing.T) {
	token := signToken(t, "user-42", testSecret, time.Hour)
	recorder := doAuthRequest(t, authConfig(testSecret), "Bearer "+token)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), "user-42") {
		t.Errorf("user id not propagated: %s", recorder.Body.String())
	}
}

func TestUserIdentityRejectsBadTokens(t *testing.T) {
	cases := []struct {
		name          string
		authorization string
	}{
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signTokenForTest("user-1", "other-secret")},
		{"expired", "Bearer " + signToken(t, "user-1", testSecret, -time.Hour)},
	}

	for _, tc := range cases {
		recorder := doAuthRequest(t, authConfig(testSecret), tc.authorization)
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tc.name, recorder.Code)
		}
	}
}

func signTokenForTest(subject string, secret string) string {
	token, _ := jwt.NewBuilder().Subject(subject).Expiration(time.Now().Add(time.Hour)).Build()
	signed, _ := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secret)))
	return string(signed)
}

func TestUserIdentityRejectsSubjectlessToken(t *testing.T) {
	token := signToken(t, "", testSecret, time.Hour)
	recorder := doAuthRequest(t, authConfig(testSecret), "Bearer "+token)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func TestUserIdentityWithoutSecret(t *testing.T) {
	// 익명 요청은 통과한다.
	recorder := doAuthRequest(t, authConfig(""), "")
	if recorder.Code != http.StatusOK {
		t.Errorf("anonymous status = %d", recorder.Code)
	}

	// 검증 불가능한 토큰 제시는 거부한다.
	token := signTokenForTest("user-1", testSecret)
	recorder = doAuthRequest(t, authConfig(""), "Bearer "+token)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("token status = %d, want 401", recorder.Code)
	}
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), UserIdentity(authConfig(testSecret)))
	router.GET("/api/papers", RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/papers", nil))
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/papers", nil)
	request.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", testSecret, time.Hour))
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", recorder.Code)
	}
}
