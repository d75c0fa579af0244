package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/park285/paperforge-go/internal/middleware"
	"github.com/park285/paperforge-go/internal/paper"
	"github.com/park285/paperforge-go/internal/usecase/research"
)

// GenerateRequest 는 논문 생성 요청이다. format 은 인용 스타일 식별자를 받는다.
type GenerateRequest struct {
	Topic     string `json:"topic" binding:"required"`
	Format    string `json:"format"`
	WordCount int    `json:"wordCount"`
}

// GenerateResponse 는 논문 생성 응답이다.
type GenerateResponse struct {
	Paper   *paper.Paper `json:"paper"`
	Topic   string       `json:"topic"`
	Format  string       `json:"format"`
	SavedID string       `json:"saved_id,omitempty"`
}

// OriginalityRequest 는 독창성 분석 요청이다.
type OriginalityRequest struct {
	Text string `json:"text" binding:"required"`
}

// ResearchHandler 는 논문 생성과 독창성 분석 API 핸들러다.
type ResearchHandler struct {
	service *research.Service
}

// NewResearchHandler 는 research 핸들러를 생성한다.
func NewResearchHandler(service *research.Service) *ResearchHandler {
	return &ResearchHandler{service: service}
}

// RegisterRoutes 는 research 라우트를 등록한다.
func (h *ResearchHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/originality-check", h.handleOriginalityCheck)
	router.POST("/api/papers/generate", h.handleGenerate)
}

func (h *ResearchHandler) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.GeneratePaper(
		c.Request.Context(),
		middleware.GetRequestID(c),
		research.GenerateRequest{
			Topic:     req.Topic,
			Style:     req.Format,
			WordCount: req.WordCount,
			UserID:    middleware.GetUserID(c),
		},
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Paper:   result.Paper,
		Topic:   result.Topic,
		Format:  string(result.Style),
		SavedID: result.SavedID,
	})
}

func (h *ResearchHandler) handleOriginalityCheck(c *gin.Context) {
	var req OriginalityRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.service.CheckOriginality(c.Request.Context(), middleware.GetRequestID(c), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
