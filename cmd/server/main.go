package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"acadex/academy-ops/internal/api"
	"acadex/academy-ops/internal/config"
	"acadex/academy-ops/internal/repository/mongo"
	"acadex/academy-ops/internal/service"
	"acadex/academy-ops/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Academy Ops Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureCohortIndexes(ctx, appDB.Collection("cohorts"))
		mongo.EnsureCandidateIndexes(ctx, appDB.Collection("candidates"))
		mongo.EnsureEffortIndexes(ctx, appDB.Collection("stakeholder_efforts"))
		// The unique (cohortId, weekStartDate) index is what enforces
		// at-most-one summary per week; it must exist before traffic.
		mongo.EnsureWeeklySummaryIndexes(ctx, appDB.Collection("weekly_effort_summaries"))
		mongo.EnsureHolidayIndexes(ctx, appDB.Collection("holidays"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing submission archive storage...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	cohortRepo := mongo.NewMongoCohortRepository(appDB)
	candidateRepo := mongo.NewMongoCandidateRepository(appDB)
	effortRepo := mongo.NewMongoEffortRepository(appDB)
	summaryRepo := mongo.NewMongoWeeklySummaryRepository(appDB)
	holidayRepo := mongo.NewMongoHolidayRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	cohortService := service.NewCohortService(cohortRepo)
	candidateService := service.NewCandidateService(candidateRepo, cohortRepo)
	effortService := service.NewEffortService(cohortRepo, effortRepo, summaryRepo, holidayRepo, userRepo, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, cohortService, candidateService, effortService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
