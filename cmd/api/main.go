package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"brandexpo/config"
	authadapter "brandexpo/internal/adapters/auth"
	"brandexpo/internal/adapters/oauth"
	"brandexpo/internal/adapters/storage"
	apphttp "brandexpo/internal/delivery/http"
	"brandexpo/internal/delivery/http/controllers"
	"brandexpo/internal/delivery/http/middleware"
	"brandexpo/internal/repository/postgres"
	"brandexpo/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title BrandExpo API
// @version 1.0
// @description Event discovery and application platform for brands.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	eventRepo := postgres.NewEventRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	proposalRepo := postgres.NewCounterProposalRepository(db)
	brandProfileRepo := postgres.NewBrandProfileRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	hasher := authadapter.NewBcryptHasher(12)
	tokens := authadapter.NewJWTManager(cfg.JWTSecret)
	oauthProvider := oauth.NewProvider(cfg.OAuth)
	fileStore := storage.NewS3Store(cfg.S3)

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	applicationService := services.NewApplicationService(applicationRepo, eventRepo, brandProfileRepo, profileRepo, serviceTimeout)
	proposalService := services.NewCounterProposalService(proposalRepo, serviceTimeout)
	brandProfileService := services.NewBrandProfileService(brandProfileRepo, fileStore, serviceTimeout)
	authService := services.NewAuthService(profileRepo, hasher, tokens, oauthProvider, cfg.TokenExpiry, serviceTimeout)

	eventController := controllers.NewEventController(logger, eventService)
	applicationController := controllers.NewApplicationController(logger, applicationService)
	proposalController := controllers.NewProposalController(logger, proposalService)
	brandProfileController := controllers.NewBrandProfileController(logger, brandProfileService)
	authController := controllers.NewAuthController(logger, authService)

	mux := apphttp.NewRouter(
		tokens,
		eventController,
		applicationController,
		proposalController,
		brandProfileController,
		authController,
	)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
