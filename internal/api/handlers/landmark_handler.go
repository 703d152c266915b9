package handlers

import (
	"net/http"
	"strings"

	"asir-guide-api/internal/models"
	"asir-guide-api/internal/repository"
	"asir-guide-api/internal/services"

	"github.com/gorilla/mux"
)

// LandmarkHandler serves the catalog REST surface. With a repository the
// lookups hit the landmark table directly; without one they go through the
// in-memory catalog.
type LandmarkHandler struct {
	catalogService services.CatalogService
	repo           repository.LandmarkRepository
}

func NewLandmarkHandler(catalogService services.CatalogService, repo repository.LandmarkRepository) *LandmarkHandler {
	return &LandmarkHandler{catalogService: catalogService, repo: repo}
}

// ListLandmarks returns the catalog, optionally filtered by a name or id
// query via ?search=.
func (h *LandmarkHandler) ListLandmarks(w http.ResponseWriter, r *http.Request) {
	if !h.catalogService.Ready() {
		respondWithError(w, http.StatusServiceUnavailable, "Catalog not loaded")
		return
	}

	if search := r.URL.Query().Get("search"); search != "" {
		var landmark *models.Landmark
		if h.repo != nil {
			found, err := h.findInTable(r, search)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Error searching landmarks")
				return
			}
			landmark = found
		} else {
			landmark = h.catalogService.FindByIDOrName(search)
		}

		if landmark == nil {
			respondWithError(w, http.StatusNotFound, "Landmark not found")
			return
		}
		respondWithJSON(w, http.StatusOK, landmark)
		return
	}

	respondWithJSON(w, http.StatusOK, h.catalogService.Landmarks())
}

// GetLandmark fetches one landmark by its identifier.
func (h *LandmarkHandler) GetLandmark(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var landmark *models.Landmark
	if h.repo != nil {
		found, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Error fetching landmark")
			return
		}
		landmark = found
	} else {
		landmark = h.catalogService.Get(id)
	}

	if landmark == nil {
		respondWithError(w, http.StatusNotFound, "Landmark not found")
		return
	}

	respondWithJSON(w, http.StatusOK, landmark)
}

// findInTable mirrors the in-memory lookup order: exact id first, then a
// case-insensitive name match.
func (h *LandmarkHandler) findInTable(r *http.Request, query string) (*models.Landmark, error) {
	landmark, err := h.repo.GetByID(r.Context(), strings.TrimSpace(query))
	if err != nil || landmark != nil {
		return landmark, err
	}
	return h.repo.FindByName(r.Context(), query)
}
