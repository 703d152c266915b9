package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"asir-guide-api/internal/api"
	"asir-guide-api/internal/config"
	"asir-guide-api/internal/db"
	"asir-guide-api/internal/repository"
	"asir-guide-api/internal/services"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	aiConfig := config.NewAIConfig()
	cacheConfig := config.NewCacheConfig()
	serverConfig := config.NewServerConfig()
	catalogConfig := config.NewCatalogConfig()

	// Pick the catalog source: Postgres when configured, the static JSON
	// document otherwise.
	var gormDB *gorm.DB
	var landmarkRepo repository.LandmarkRepository
	var source repository.CatalogSource
	if catalogConfig.DatabaseURL != "" {
		database, err := db.Connect(catalogConfig.DatabaseURL, catalogConfig.CatalogSource)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		gormDB = database
		landmarkRepo = repository.NewLandmarkRepository(database)
		source = repository.NewDBCatalogSource(landmarkRepo)

		if count, err := landmarkRepo.Count(context.Background()); err == nil {
			log.Printf("Landmark table holds %d records", count)
		}
	} else {
		source = repository.NewFileCatalogSource(catalogConfig.CatalogSource)
	}

	// A failed load is not fatal: the service runs, lookups miss and
	// visitors get the localized data-error message.
	catalogService, err := services.NewCatalogService(context.Background(), source)
	if err != nil {
		log.Printf("Warning: catalog load failed: %v", err)
	}

	// Memory wall storage: redis when configured, process memory otherwise.
	var photoStore services.PhotoStore
	if cacheConfig.RedisHost != "" {
		redisStore, err := services.NewRedisPhotoStore(cacheConfig)
		if err != nil {
			log.Fatal("Failed to connect to redis:", err)
		}
		photoStore = redisStore
	} else {
		photoStore = services.NewMemoryPhotoStore()
	}

	// Initialize services
	aiService := services.NewAIService(aiConfig)
	chatService := services.NewChatService(catalogService, aiService)
	photoService := services.NewPhotoService(photoStore)
	sessionManager := services.NewSessionManager(serverConfig.SessionTimeout, services.DefaultTypingUnit)
	defer sessionManager.Stop()

	router := api.SetupRoutes(api.Deps{
		Sessions: sessionManager,
		Chat:     chatService,
		Catalog:  catalogService,
		Photos:   photoService,
		Repo:     landmarkRepo,
		DB:       gormDB,
		AIURL:    aiConfig.APIURL,
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: serverConfig.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	// The write timeout has to cover a full landmark turn's queued typing
	// delays plus an AI round trip.
	srv := &http.Server{
		Handler:      corsMiddleware.Handler(router),
		Addr:         ":" + serverConfig.Port,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start server
	log.Printf("Server starting on port %s...", serverConfig.Port)
	log.Fatal(srv.ListenAndServe())
}
