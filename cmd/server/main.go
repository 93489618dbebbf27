package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/database"
	"github.com/classpad-app/classpad-backend/internal/handler"
	"github.com/classpad-app/classpad-backend/internal/logger"
	"github.com/classpad-app/classpad-backend/internal/repository"
	"github.com/classpad-app/classpad-backend/internal/router"
	"github.com/classpad-app/classpad-backend/internal/service"
	"github.com/classpad-app/classpad-backend/internal/validator"
	"github.com/classpad-app/classpad-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ClassPad Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	db, err := database.NewMongoDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(context.Background())

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	templateRepo := repository.NewClassTemplateRepository(db)
	historyRepo := repository.NewQuizHistoryRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure admin indexes")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	queue := worker.NewRedisQueue(rdb)

	authService := service.NewAuthService(cfg, rdb, adminRepo)
	inviteService := service.NewInviteService(inviteRepo, log)
	classService := service.NewClassService(classRepo, userRepo, inviteService, queue, log)
	enrollmentService := service.NewEnrollmentService(userRepo, classRepo, log)
	groupService := service.NewGroupService(userRepo, classRepo, log)
	scoringService := service.NewScoringService(classRepo, historyRepo, queue, queue, log)
	migrationService := service.NewMigrationService(classRepo, inviteRepo, templateRepo, cfg.MigrationBatchSize, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Class:       handler.NewClassHandler(classService, enrollmentService, scoringService),
		Group:       handler.NewGroupHandler(groupService),
		Invite:      handler.NewInviteHandler(inviteService, classService),
		Maintenance: handler.NewMaintenanceHandler(migrationService),
		WS:          handler.NewWSHandler(rdb, classService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	classCreatedWorker := worker.NewClassCreatedWorker(rdb, classService, log)
	quizResultWorker := worker.NewQuizResultWorker(rdb, scoringService, log)

	go classCreatedWorker.Start(workerCtx)
	go quizResultWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
