package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"asir-guide-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPhotoRouter(t *testing.T) *mux.Router {
	t.Helper()

	handler := NewPhotoHandler(services.NewPhotoService(services.NewMemoryPhotoStore()))

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/landmarks/{id}/photos", handler.ListPhotos).Methods("GET")
	router.HandleFunc("/api/v1/landmarks/{id}/photos", handler.UploadPhoto).Methods("POST")
	return router
}

func multipartUpload(t *testing.T, name, lang string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if content != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if name != "" {
		require.NoError(t, writer.WriteField("name", name))
	}
	if lang != "" {
		require.NoError(t, writer.WriteField("lang", lang))
	}
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestUploadAndListPhotos(t *testing.T) {
	router := newPhotoRouter(t)

	body, contentType := multipartUpload(t, "Noura", "en", []byte{0x89, 'P', 'N', 'G'})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/landmarks/001/photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var gallery galleryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gallery))
	require.Len(t, gallery.Photos, 1)
	assert.Equal(t, "Noura", gallery.Photos[0].Name)
	assert.True(t, strings.HasPrefix(gallery.Photos[0].Src, "data:image/png;base64,"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/landmarks/001/photos", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gallery))
	assert.Equal(t, "001", gallery.LandmarkID)
	assert.Len(t, gallery.Photos, 1)

	// A different landmark has its own, still empty, wall.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/landmarks/002/photos", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gallery))
	assert.Empty(t, gallery.Photos)
}

func TestUploadWithoutFileIsRejected(t *testing.T) {
	router := newPhotoRouter(t)

	body, contentType := multipartUpload(t, "", "en", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/landmarks/001/photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please choose a photo first.")
}

func TestUploadWithoutFileFallsBackToArabic(t *testing.T) {
	router := newPhotoRouter(t)

	body, contentType := multipartUpload(t, "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/landmarks/001/photos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "الرجاء اختيار صورة أولاً.")
}
