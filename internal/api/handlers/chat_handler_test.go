package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asir-guide-api/internal/i18n"
	"asir-guide-api/internal/models"
	"asir-guide-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	catalog *models.Catalog
}

func (s stubSource) Load(ctx context.Context) (*models.Catalog, error) {
	return s.catalog, nil
}

type stubAI struct {
	reply string
}

func (s stubAI) Ask(ctx context.Context, userText, contextText string, lang i18n.Language) (string, error) {
	return s.reply, nil
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	catalog, err := services.NewCatalogService(context.Background(), stubSource{catalog: &models.Catalog{
		Landmarks: []models.Landmark{
			{
				ID:              "001",
				Name:            models.LocalizedText{"ar": "قرية رجال ألمع", "en": "Rijal Almaa"},
				Description:     models.LocalizedText{"ar": "قرية تراثية", "en": "A heritage village"},
				Recommendations: models.StringList{"002"},
			},
			{
				ID:          "002",
				Name:        models.LocalizedText{"ar": "جبل السودة", "en": "Jabal Sawda"},
				Description: models.LocalizedText{"ar": "أعلى قمة", "en": "The highest peak"},
				Location:    &models.Location{GoogleMapsURL: "https://maps.example.com/002"},
			},
		},
		Stats: models.CatalogStats{Languages: map[string]int64{}},
	}})
	require.NoError(t, err)

	sessions := services.NewSessionManager(time.Hour, 0)
	t.Cleanup(sessions.Stop)

	router := mux.NewRouter()
	chatHandler := NewChatHandler(sessions, services.NewChatService(catalog, stubAI{reply: "ai says hi"}))
	landmarkHandler := NewLandmarkHandler(catalog, nil)
	statsHandler := NewStatsHandler(catalog)

	router.HandleFunc("/api/v1/sessions", chatHandler.CreateSession).Methods("POST")
	router.HandleFunc("/api/v1/sessions/{id}/language", chatHandler.SetLanguage).Methods("POST")
	router.HandleFunc("/api/v1/sessions/{id}/messages", chatHandler.PostMessage).Methods("POST")
	router.HandleFunc("/api/v1/sessions/{id}/transcript", chatHandler.GetTranscript).Methods("GET")
	router.HandleFunc("/api/v1/landmarks", landmarkHandler.ListLandmarks).Methods("GET")
	router.HandleFunc("/api/v1/landmarks/{id}", landmarkHandler.GetLandmark).Methods("GET")
	router.HandleFunc("/api/v1/stats", statsHandler.GetStats).Methods("GET")

	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) (*httptest.ResponseRecorder, sessionResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp sessionResponse
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func TestConversationOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Open a session: Arabic welcome plus the language options.
	rec, created := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, created.SessionID)
	assert.Len(t, created.Languages, 4)
	require.NotEmpty(t, created.Messages)
	assert.Equal(t, "مرحباً بكم في الدليل السياحي الذكي لمنطقة عسير!", created.Messages[0].Text)

	base := "/api/v1/sessions/" + created.SessionID

	// A message before language selection is rejected.
	rec, _ = doJSON(t, router, http.MethodPost, base+"/messages", messageRequest{Text: "001"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Pick English.
	rec, langResp := doJSON(t, router, http.MethodPost, base+"/language", languageRequest{Language: "en"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", langResp.Language)
	require.Len(t, langResp.Messages, 2)
	assert.Equal(t, "Language set to English", langResp.Messages[0].Text)
	assert.Equal(t, "Please enter the landmark number or name...", langResp.Messages[1].Text)

	// Whitespace-only text is rejected like empty text.
	rec, _ = doJSON(t, router, http.MethodPost, base+"/messages", messageRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Landmark lookup turn.
	rec, msgResp := doJSON(t, router, http.MethodPost, base+"/messages", messageRequest{Text: "001"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, msgResp.Messages)
	assert.Equal(t, models.SenderUser, msgResp.Messages[0].Sender)
	assert.Contains(t, msgResp.Messages[1].Text, "Rijal Almaa")

	// Accept the recommendation prompt.
	rec, yesResp := doJSON(t, router, http.MethodPost, base+"/messages", messageRequest{Text: "yes"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, yesResp.Messages, 2)
	assert.Contains(t, yesResp.Messages[1].Text, "Jabal Sawda")

	// The transcript holds the whole conversation.
	rec, transcript := doJSON(t, router, http.MethodGet, base+"/transcript", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(transcript.Messages), 8)

	// The visit was counted.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	statsRec := httptest.NewRecorder()
	router.ServeHTTP(statsRec, req)
	require.Equal(t, http.StatusOK, statsRec.Code)

	var stats models.CatalogStats
	require.NoError(t, json.Unmarshal(statsRec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalVisits)
	assert.Equal(t, int64(1), stats.Languages["en"])
}

func TestSetLanguageRejectsUnknownCode(t *testing.T) {
	router := newTestRouter(t)

	_, created := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/language", languageRequest{Language: "de"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownSessionIs404(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/sessions/nope/messages", messageRequest{Text: "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLandmarkEndpoints(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/landmarks/001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var landmark models.Landmark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &landmark))
	assert.Equal(t, "Rijal Almaa", landmark.Name["en"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/landmarks/999", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/landmarks?search=sawda", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &landmark))
	assert.Equal(t, "002", landmark.ID)
}
