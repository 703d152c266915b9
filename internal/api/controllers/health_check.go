package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"
)

type HealthCheckResponse struct {
	Status           string            `json:"status"`
	Database         string            `json:"database"`
	ExternalServices map[string]string `json:"external_services"`
}

// HealthCheckHandler checks API health, the optional database connection
// and the completion endpoint.
func HealthCheckHandler(db *gorm.DB, aiURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthCheckResponse{
			Status:           "API is running",
			ExternalServices: make(map[string]string),
		}

		response.Database = checkDatabase(db)
		response.ExternalServices["AI API"] = checkExternalService(aiURL)

		respondWithJSON(w, http.StatusOK, response)
	}
}

func checkDatabase(db *gorm.DB) string {
	if db == nil {
		return "Not configured (file catalog)"
	}

	sqlDB, err := db.DB()
	if err != nil {
		return "Database connection failed"
	}
	if err := sqlDB.Ping(); err != nil {
		return "Database connection failed"
	}
	return "Database connection is healthy"
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// checkExternalService checks the status of an external service
func checkExternalService(url string) string {
	client := http.Client{
		Timeout: 5 * time.Second, // Set a timeout for the request
	}

	resp, err := client.Get(url)
	if err != nil {
		return "Unreachable"
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusInternalServerError {
		return "Available"
	}
	return "Unavailable"
}
