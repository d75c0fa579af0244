package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/park285/paperforge-go/internal/export"
	"github.com/park285/paperforge-go/internal/httperror"
	"github.com/park285/paperforge-go/internal/metrics"
	"github.com/park285/paperforge-go/internal/middleware"
	"github.com/park285/paperforge-go/internal/paper"
	"github.com/park285/paperforge-go/internal/store"
	"github.com/park285/paperforge-go/internal/usecase/research"
)

// PaperDetail 은 보관된 논문 단건 응답이다.
type PaperDetail struct {
	ID            string       `json:"id"`
	Topic         string       `json:"topic"`
	CitationStyle string       `json:"citation_style"`
	CreatedAt     time.Time    `json:"created_at"`
	Content       *paper.Paper `json:"content"`
}

// PaperListResponse 는 보관함 목록 응답이다.
type PaperListResponse struct {
	Papers []store.Summary `json:"papers"`
	Count  int64           `json:"count"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// SavePaperRequest 는 완성된 논문을 직접 저장하는 요청이다. 논문 필드는 본문에 평탄하게 실린다.
type SavePaperRequest struct {
	paper.Paper
	Topic         string `json:"topic"`
	CitationStyle string `json:"citation_style"`
}

// ExportRequest 는 내보내기 요청이다. 본문 논문 또는 보관함 ID 중 하나를 받는다.
type ExportRequest struct {
	Format  string       `json:"format" binding:"required"`
	Paper   *paper.Paper `json:"paper"`
	PaperID string       `json:"paper_id"`
}

// PapersHandler 는 논문 보관함 API 핸들러다.
type PapersHandler struct {
	service *research.Service
	metrics *metrics.Store
}

// NewPapersHandler 는 papers 핸들러를 생성한다.
func NewPapersHandler(service *research.Service, metricsStore *metrics.Store) *PapersHandler {
	return &PapersHandler{service: service, metrics: metricsStore}
}

// RegisterRoutes 는 papers 라우트를 등록한다.
func (h *PapersHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/papers/export", h.handleExport)

	group := router.Group("/api/papers", middleware.RequireUser())
	group.GET("", h.handleList)
	group.POST("", h.handleCreate)
	group.GET("/:id", h.handleGet)
	group.DELETE("/:id", h.handleDelete)
}

func (h *PapersHandler) handleList(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	papers, count, err := h.service.ListPapers(
		c.Request.Context(),
		middleware.GetUserID(c),
		store.ListQuery{
			Limit:  limit,
			Offset: offset,
			Search: c.Query("search"),
		},
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaperListResponse{
		Papers: papers,
		Count:  count,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *PapersHandler) handleCreate(c *gin.Context) {
	var req SavePaperRequest
	if !bindJSON(c, &req) {
		return
	}

	content := req.Paper
	record, err := h.service.SavePaper(
		c.Request.Context(),
		middleware.GetUserID(c),
		req.Topic,
		req.CitationStyle,
		&content,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"paper": paperDetail(record)})
}

func (h *PapersHandler) handleGet(c *gin.Context) {
	record, err := h.service.GetPaper(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paper": paperDetail(record)})
}

func (h *PapersHandler) handleDelete(c *gin.Context) {
	if err := h.service.DeletePaper(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PapersHandler) handleExport(c *gin.Context) {
	var req ExportRequest
	if !bindJSON(c, &req) {
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(c, httperror.NewInvalidInput(err.Error()))
		return
	}

	content, err := h.resolveExportContent(c, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	file, err := export.Render(format, content)
	if err != nil {
		writeError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordExport(string(format))
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *PapersHandler) resolveExportContent(c *gin.Context, req *ExportRequest) (*paper.Paper, error) {
	if req.Paper != nil {
		if err := req.Paper.Validate(); err != nil {
			return nil, httperror.NewInvalidInput(err.Error())
		}
		return req.Paper, nil
	}

	if req.PaperID == "" {
		return nil, httperror.NewMissingField("paper")
	}

	userID := middleware.GetUserID(c)
	if userID == "" {
		return nil, httperror.NewUnauthorized("Authentication required to export a saved paper")
	}

	record, err := h.service.GetPaper(c.Request.Context(), userID, req.PaperID)
	if err != nil {
		return nil, err
	}
	return record.Content(), nil
}

func paperDetail(record *store.PaperRecord) PaperDetail {
	return PaperDetail{
		ID:            record.ID,
		Topic:         record.Topic,
		CitationStyle: record.CitationStyle,
		CreatedAt:     record.CreatedAt,
		Content:       record.Content(),
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
