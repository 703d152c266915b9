package handlers

import (
	"net/http"

	"asir-guide-api/internal/services"
)

type StatsHandler struct {
	catalogService services.CatalogService
}

func NewStatsHandler(catalogService services.CatalogService) *StatsHandler {
	return &StatsHandler{catalogService: catalogService}
}

// GetStats returns the session-wide catalog counters: total visits and the
// per-language usage tally.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalogService.Stats())
}
