package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func seedPaper(t *testing.T, app *testApp, userID string) string {
	t.Helper()
	recorder := app.do(t, http.MethodPost, "/api/papers/generate", map[string]any{
		"topic": "federated learning",
	}, userToken(t, userID))
	if recorder.Code != http.StatusOK {
		t.Fatalf("seed generate status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	var response GenerateResponse
	decodeBody(t, recorder, &response)
	if response.SavedID == "" {
		t.Fatal("seed paper not saved")
	}
	return response.SavedID
}

func TestListPapersRequiresAuth(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	recorder := app.do(t, http.MethodGet, "/api/papers", nil, "")
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func TestListPapers(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})
	seedPaper(t, app, "user-1")

	recorder := app.do(t, http.MethodGet, "/api/papers?limit=10&offset=0", nil, userToken(t, "user-1"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var response PaperListResponse
	decodeBody(t, recorder, &response)
	if response.Count != 1 || len(response.Papers) != 1 {
		t.Fatalf("response = %+v", response)
	}
	if response.Limit != 10 || response.Offset != 0 {
		t.Errorf("paging echo = %d/%d", response.Limit, response.Offset)
	}
	if response.Papers[0].Topic != "federated learning" {
		t.Errorf("summary = %+v", response.Papers[0])
	}
}

func TestListPapersScopedToUser(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})
	seedPaper(t, app, "user-1")

	recorder := app.do(t, http.MethodGet, "/api/papers", nil, userToken(t, "user-2"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var response PaperListResponse
	decodeBody(t, recorder, &response)
	if response.Count != 0 {
		t.Errorf("user-2 should not see user-1 papers: %+v", response)
	}
}

func TestGetPaper(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})
	id := seedPaper(t, app, "user-1")

	recorder := app.do(t, http.MethodGet, "/api/papers/"+id, nil, userToken(t, "user-1"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Paper PaperDetail `json:"paper"`
	}
	decodeBody(t, recorder, &response)
	if response.Paper.ID != id || response.Paper.Content == nil {
		t.Fatalf("detail = %+v", response.Paper)
	}
	if response.Paper.Content.Title != "Federated Learning at the Edge" {
		t.Errorf("content = %+v", response.Paper.Content)
	}
}

func TestGetPaperNotFound(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	recorder := app.do(t, http.MethodGet, "/api/papers/missing", nil, userToken(t, "user-1"))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

func TestGetPaperOtherUser(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})
	id := seedPaper(t, app, "user-1")

	recorder := app.do(t, http.MethodGet, "/api/papers/"+id, nil, userToken(t, "user-2"))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for foreign paper", recorder.Code)
	}
}

func TestDeletePaper(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})
	id := seedPaper(t, app, "user-1")

	recorder := app.do(t, http.MethodDelete, "/api/papers/"+id, nil, userToken(t, "user-1"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var response map[string]bool
	decodeBody(t, recorder, &response)
	if !response["success"] {
		t.Errorf("response = %+v", response)
	}
	if len(app.papers.deleted) != 1 {
		t.Errorf("deleted = %v", app.papers.deleted)
	}
}

func TestExportInlinePaperDOCX(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	var content map[string]any
	if err := json.Unmarshal([]byte(testPaperJSON), &content); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}

	recorder := app.do(t, http.MethodPost, "/api/papers/export", map[string]any{
		"format": "docx",
		"paper":  content,
	}, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Header().Get("Content-Type"); !strings.Contains(got, "wordprocessingml") {
		t.Errorf("content type = %q", got)
	}
	if got := recorder.Header().Get("Content-Disposition"); !strings.Contains(got, "research-paper.docx") {
		t.Errorf("disposition = %q", got)
	}
	if recorder.Body.Len() == 0 {
		t.Error("empty export body")
	}
}

func TestExportSavedPaperHTML(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})
	id := seedPaper(t, app, "user-1")

	recorder := app.do(t, http.MethodPost, "/api/papers/export", map[string]any{
		"format":   "pdf",
		"paper_id": id,
	}, userToken(t, "user-1"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Header().Get("Content-Disposition"); !strings.Contains(got, "research-paper.html") {
		t.Errorf("disposition = %q", got)
	}
	if !strings.Contains(recorder.Body.String(), "<h2>I. Introduction</h2>") {
		t.Error("html body missing sections")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	recorder := app.do(t, http.MethodPost, "/api/papers/export", map[string]any{
		"format": "epub",
	}, "")
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestExportWithoutPaper(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	recorder := app.do(t, http.MethodPost, "/api/papers/export", map[string]any{
		"format": "docx",
	}, "")
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestExportSavedPaperRequiresAuth(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	recorder := app.do(t, http.MethodPost, "/api/papers/export", map[string]any{
		"format":   "docx",
		"paper_id": "paper-1",
	}, "")
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func savePaperBody(t *testing.T) map[string]any {
	t.Helper()
	body := map[string]any{}
	if err := json.Unmarshal([]byte(testPaperJSON), &body); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	body["topic"] = "federated learning"
	body["citation_style"] = "apa"
	body["word_count"] = 1500
	return body
}

func TestSavePaperRequiresAuth(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	recorder := app.do(t, http.MethodPost, "/api/papers", savePaperBody(t), "")
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", recorder.Code)
	}
}

func TestSavePaper(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	recorder := app.do(t, http.MethodPost, "/api/papers", savePaperBody(t), userToken(t, "user-1"))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Paper PaperDetail `json:"paper"`
	}
	decodeBody(t, recorder, &response)
	if response.Paper.ID == "" {
		t.Error("expected saved paper id")
	}
	if response.Paper.CitationStyle != "apa" {
		t.Errorf("citation_style = %q", response.Paper.CitationStyle)
	}
	if response.Paper.Content == nil || response.Paper.Content.Title != "Federated Learning at the Edge" {
		t.Errorf("content = %+v", response.Paper.Content)
	}

	listRecorder := app.do(t, http.MethodGet, "/api/papers", nil, userToken(t, "user-1"))
	var list PaperListResponse
	decodeBody(t, listRecorder, &list)
	if list.Count != 1 {
		t.Errorf("count = %d, want 1", list.Count)
	}
}

func TestSavePaperMissingFields(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	body := savePaperBody(t)
	delete(body, "abstract")
	delete(body, "references")

	recorder := app.do(t, http.MethodPost, "/api/papers", body, userToken(t, "user-1"))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "abstract") {
		t.Errorf("body = %s", recorder.Body.String())
	}
}

func TestSavePaperMissingTopic(t *testing.T) {
	app := newTestApp(t, &stubGenerator{text: testPaperJSON})

	body := savePaperBody(t)
	delete(body, "topic")

	recorder := app.do(t, http.MethodPost, "/api/papers", body, userToken(t, "user-1"))
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}
