package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/config"
	"github.com/Thejackcode565/Wish-A-Day/internal/database"
	"github.com/Thejackcode565/Wish-A-Day/internal/handlers"
	"github.com/Thejackcode565/Wish-A-Day/internal/jobs"
	"github.com/Thejackcode565/Wish-A-Day/internal/repository"
	cron "github.com/Thejackcode565/Wish-A-Day/internal/scheduler"
	"github.com/Thejackcode565/Wish-A-Day/internal/services"
	"github.com/Thejackcode565/Wish-A-Day/internal/storage"
	"github.com/Thejackcode565/Wish-A-Day/pkg/logger"
	"github.com/Thejackcode565/Wish-A-Day/pkg/middleware"
	"github.com/Thejackcode565/Wish-A-Day/pkg/ratelimit"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Storage error: %v", err)
	}

	// --- Repositories ---
	wishRepo := repository.NewWishRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// --- Services ---
	imageService := services.NewImageService(files, cfg.MaxFileSize)
	wishService := services.NewWishService(wishRepo)

	sweeper := jobs.NewCleanupSweeper(
		wishRepo,
		imageRepo,
		imageService,
		files,
		time.Duration(cfg.SoftDeleteGracePeriodMin)*time.Minute,
		cfg.MinFreeDiskBytes,
	)

	uploadService := services.NewUploadService(wishRepo, imageRepo, imageService, sweeper, cfg.MaxImagesPerWish)

	// --- Handlers ---
	wishHandler := handlers.NewWishHandler(wishService, uploadService, cfg)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg)

	// Daily per-IP creation limit; Redis when configured, in-process otherwise.
	var counter ratelimit.Counter
	if cfg.RedisAddr != "" {
		counter = ratelimit.NewRedisCounter(cfg.RedisAddr)
	} else {
		counter = ratelimit.NewMemoryCounter()
	}
	rateLimit := middleware.RateLimitMiddleware(counter, cfg.MaxWishesPerIPPerDay)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Handle("/wishes", rateLimit(http.HandlerFunc(wishHandler.CreateWishHandler))).Methods("POST")
	api.HandleFunc("/wishes/{slug}", wishHandler.GetWishHandler).Methods("GET")
	api.HandleFunc("/wishes/{slug}", wishHandler.DeleteWishHandler).Methods("DELETE")
	api.HandleFunc("/wishes/{slug}/status", wishHandler.GetStatusHandler).Methods("GET")

	api.HandleFunc("/wishes/{slug}/images", uploadHandler.UploadImageHandler).Methods("POST")
	api.HandleFunc("/wishes/{slug}/images", uploadHandler.ListImagesHandler).Methods("GET")
	api.HandleFunc("/wishes/{slug}/images/{id}", uploadHandler.DeleteImageHandler).Methods("DELETE")

	// Serve normalized images straight from the storage root
	router.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(files.Root()))))

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the cleanup sweeper
	cron.StartCleanupCron(sweeper, cfg.CleanupIntervalMinutes)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
