package api

import (
	"time"

	"asir-guide-api/internal/api/controllers"
	"asir-guide-api/internal/api/handlers"
	"asir-guide-api/internal/middleware"
	"asir-guide-api/internal/repository"
	"asir-guide-api/internal/services"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Deps carries everything the router wires together.
type Deps struct {
	Sessions *services.SessionManager
	Chat     services.ChatService
	Catalog  services.CatalogService
	Photos   services.PhotoService
	Repo     repository.LandmarkRepository
	DB       *gorm.DB
	AIURL    string
}

func SetupRoutes(deps Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	chatHandler := handlers.NewChatHandler(deps.Sessions, deps.Chat)
	landmarkHandler := handlers.NewLandmarkHandler(deps.Catalog, deps.Repo)
	photoHandler := handlers.NewPhotoHandler(deps.Photos)
	statsHandler := handlers.NewStatsHandler(deps.Catalog)

	router.HandleFunc("/health", controllers.HealthCheckHandler(deps.DB, deps.AIURL)).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	rateLimiter := middleware.NewRateLimiter(120, time.Minute)
	apiRouter.Use(rateLimiter.RateLimit)

	// Conversation routes
	apiRouter.HandleFunc("/sessions", chatHandler.CreateSession).Methods("POST")
	apiRouter.HandleFunc("/sessions/{id}/language", chatHandler.SetLanguage).Methods("POST")
	apiRouter.HandleFunc("/sessions/{id}/messages", chatHandler.PostMessage).Methods("POST")
	apiRouter.HandleFunc("/sessions/{id}/transcript", chatHandler.GetTranscript).Methods("GET")

	// Catalog routes
	apiRouter.HandleFunc("/landmarks", landmarkHandler.ListLandmarks).Methods("GET")
	apiRouter.HandleFunc("/landmarks/{id}", landmarkHandler.GetLandmark).Methods("GET")
	apiRouter.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Memory wall routes
	apiRouter.HandleFunc("/landmarks/{id}/photos", photoHandler.ListPhotos).Methods("GET")
	apiRouter.HandleFunc("/landmarks/{id}/photos", photoHandler.UploadPhoto).Methods("POST")

	return router
}
