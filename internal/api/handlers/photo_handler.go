package handlers

import (
	"net/http"

	"asir-guide-api/internal/i18n"
	apierrors "asir-guide-api/internal/pkg/errors"
	"asir-guide-api/internal/services"

	"github.com/gorilla/mux"
)

// PhotoHandler serves the per-landmark memory wall.
type PhotoHandler struct {
	photoService services.PhotoService
}

func NewPhotoHandler(photoService services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

type galleryResponse struct {
	LandmarkID string         `json:"landmark_id"`
	Photos     []photoPayload `json:"photos"`
}

type photoPayload struct {
	Src  string `json:"src"`
	Name string `json:"name"`
}

// ListPhotos returns the gallery for a landmark, oldest first.
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	landmarkID := mux.Vars(r)["id"]

	photos, err := h.photoService.Gallery(r.Context(), landmarkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error loading photos")
		return
	}

	payload := galleryResponse{LandmarkID: landmarkID, Photos: make([]photoPayload, 0, len(photos))}
	for _, photo := range photos {
		payload.Photos = append(payload.Photos, photoPayload{Src: photo.Src, Name: photo.Name})
	}
	respondWithJSON(w, http.StatusOK, payload)
}

// UploadPhoto appends one photo to a landmark's wall. Multipart form with
// an "image" file, an optional "name" and an optional "lang" for the
// localized fallbacks.
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	landmarkID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondWithError(w, http.StatusBadRequest, i18n.T(i18n.KeyNoFileSelected, i18n.Arabic))
		return
	}

	lang := i18n.Arabic
	if parsed, ok := i18n.ParseLanguage(r.FormValue("lang")); ok {
		lang = parsed
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, i18n.T(i18n.KeyNoFileSelected, lang))
		return
	}
	defer file.Close()

	photos, err := h.photoService.Upload(
		r.Context(),
		landmarkID,
		file,
		header.Header.Get("Content-Type"),
		r.FormValue("name"),
		lang,
	)
	if err != nil {
		if apierrors.Is(err, apierrors.ErrNoFileSelected) {
			respondWithError(w, http.StatusBadRequest, i18n.T(i18n.KeyNoFileSelected, lang))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Error storing photo")
		return
	}

	payload := galleryResponse{LandmarkID: landmarkID, Photos: make([]photoPayload, 0, len(photos))}
	for _, photo := range photos {
		payload.Photos = append(payload.Photos, photoPayload{Src: photo.Src, Name: photo.Name})
	}
	respondWithJSON(w, http.StatusCreated, payload)
}
