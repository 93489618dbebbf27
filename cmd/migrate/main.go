package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/database"
	"github.com/classpad-app/classpad-backend/internal/logger"
	"github.com/classpad-app/classpad-backend/internal/repository"
	"github.com/classpad-app/classpad-backend/internal/service"
)

// Runs the schema-v2 data migration from the command line, for operators who
// prefer not to hit the HTTP endpoint. Idempotent; safe to rerun.
func main() {
	showUsage := flag.Bool("usage", false, "Print usage and exit")
	flag.Parse()
	if *showUsage {
		printUsage()
		return
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	db, err := database.NewMongoDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(context.Background())

	classRepo := repository.NewClassRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	templateRepo := repository.NewClassTemplateRepository(db)

	migrationService := service.NewMigrationService(classRepo, inviteRepo, templateRepo, cfg.MigrationBatchSize, log)

	report, err := migrationService.MigrateToV2(ctx)
	if err != nil {
		log.Error().Err(err).
			Int("templates_created", report.TemplatesCreated).
			Int("sections_stamped", report.SectionsStamped).
			Int("invites_cleaned", report.InvitesCleaned).
			Msg("Migration failed partway; rerun to resume")
		os.Exit(1)
	}

	log.Info().
		Int("templates_created", report.TemplatesCreated).
		Int("sections_stamped", report.SectionsStamped).
		Int("invites_cleaned", report.InvitesCleaned).
		Msg("Migration completed")
}

func printUsage() {
	fmt.Println("Usage: migrate")
	fmt.Println("Backfills classTemplates and strips legacy invite fields.")
	fmt.Println("Reads MONGO_URL / MONGO_DATABASE from the environment or .env.")
}
