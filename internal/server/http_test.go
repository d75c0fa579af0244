package server

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/park285/paperforge-go/internal/config"
)

func TestNewHTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{HTTP: config.HTTPConfig{Host: "127.0.0.1", Port: 40811}}

	srv := NewHTTPServer(cfg, gin.New())
	if srv.Addr != "127.0.0.1:40811" {
		t.Errorf("addr = %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout == 0 {
		t.Error("read header timeout unset")
	}
	if _, ok := srv.Handler.(*gin.Engine); !ok {
		t.Errorf("handler should be the gin engine when h2c is off: %T", srv.Handler)
	}
}

func TestNewHTTPServerH2C(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{HTTP: config.HTTPConfig{Host: "", Port: 40811, HTTP2Enabled: true}}

	srv := NewHTTPServer(cfg, gin.New())
	if _, ok := srv.Handler.(*gin.Engine); ok {
		t.Error("h2c should wrap the gin engine")
	}
	var _ http.Handler = srv.Handler
}
