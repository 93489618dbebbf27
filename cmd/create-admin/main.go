package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/database"
	"github.com/classpad-app/classpad-backend/internal/logger"
	"github.com/classpad-app/classpad-backend/internal/model"
	"github.com/classpad-app/classpad-backend/internal/repository"
)

func main() {
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

	adminRepo := repository.NewAdminRepository(db)
	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure admin indexes")
	}

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 8 {
		fmt.Println("Error: Password must be at least 8 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	newAdmin := &model.Admin{
		ID:           primitive.NewObjectID().Hex(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := adminRepo.Insert(ctx, newAdmin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %s\n", newAdmin.Name, newAdmin.Email, newAdmin.ID)
}
