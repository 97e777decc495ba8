package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/hockey-club-system/config"
	"github.com/Dosada05/hockey-club-system/db"
	"github.com/Dosada05/hockey-club-system/handlers"
	"github.com/Dosada05/hockey-club-system/live"
	"github.com/Dosada05/hockey-club-system/repositories"
	"github.com/Dosada05/hockey-club-system/routes"
	"github.com/Dosada05/hockey-club-system/services"
	"github.com/Dosada05/hockey-club-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const inviteCleanupInterval = 1 * time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Logo storage is optional; without it upload endpoints reject
	// requests but everything else works.
	var uploader storage.FileUploader
	if cfg.HasR2() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	clubRepo := repositories.NewPostgresClubRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	variableRepo := repositories.NewPostgresVariableRepository(dbConn)
	ruleRepo := repositories.NewPostgresRuleRepository(dbConn)
	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	pointsRepo := repositories.NewPostgresPointsRepository(dbConn)
	inviteRepo := repositories.NewPostgresInviteRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey)
	clubService := services.NewClubService(clubRepo, teamRepo, uploader)
	teamService := services.NewTeamService(teamRepo, clubRepo, playerRepo, profileRepo, uploader)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	seasonService := services.NewSeasonService(seasonRepo)
	gameService := services.NewGameService(dbConn, gameRepo, teamRepo, playerRepo, logger)
	rulesService := services.NewRulesService(dbConn, ruleRepo, variableRepo, logger)
	profileService := services.NewProfileService(dbConn, profileRepo, ruleRepo, teamRepo, logger)
	variableService := services.NewVariableService(variableRepo)
	scoringService := services.NewScoringService(
		dbConn,
		teamRepo,
		clubRepo,
		gameRepo,
		ruleRepo,
		profileRepo,
		variableRepo,
		pointsRepo,
		logger,
	)
	dashboardService := services.NewDashboardService(clubRepo, teamRepo, playerRepo, gameRepo, pointsRepo)
	inviteService := services.NewInviteService(inviteRepo, teamRepo, userRepo, playerRepo)
	logger.Info("services initialized")

	// Expired invites are garbage collected in the background.
	go func() {
		ticker := time.NewTicker(inviteCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			removed, err := inviteService.CleanupExpired(context.Background())
			if err != nil {
				logger.Error("invite cleanup failed", slog.Any("error", err))
				continue
			}
			if removed > 0 {
				logger.Info("expired invites removed", slog.Int64("count", removed))
			}
		}
	}()

	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Club:      handlers.NewClubHandler(clubService, dashboardService),
		Team:      handlers.NewTeamHandler(teamService, playerService, dashboardService),
		Player:    handlers.NewPlayerHandler(playerService),
		Season:    handlers.NewSeasonHandler(seasonService),
		Game:      handlers.NewGameHandler(gameService),
		Rule:      handlers.NewRuleHandler(rulesService),
		Profile:   handlers.NewProfileHandler(profileService),
		Scoring:   handlers.NewScoringHandler(scoringService, hub),
		Variable:  handlers.NewVariableHandler(variableService),
		Invite:    handlers.NewInviteHandler(inviteService),
		WebSocket: handlers.NewWebSocketHandler(hub, clubService, logger),
	}

	router := chi.NewRouter()
	routes.SetupRoutes(router, h, cfg.JWTSecretKey)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
