package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/campusgrid/registrar/internal/config"
	"github.com/campusgrid/registrar/internal/database"
	"github.com/campusgrid/registrar/internal/logger"
	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/repository"
	"github.com/campusgrid/registrar/internal/schema"
	"github.com/campusgrid/registrar/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := schema.NewManager(pool, log).EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Schema reconciliation failed")
	}

	// ─── Initialize Service ────────────────────────────────────────────
	accountRepo := repository.NewAccountRepository(pool)
	authService := service.NewAuthService(cfg, accountRepo, nil)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Registrar Account ===")

	// Username
	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
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
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	if err := authService.Register(ctx, username, password, model.RoleRegistrar); err != nil {
		log.Fatal().Err(err).Msg("Failed to create registrar account")
	}

	fmt.Printf("\nSuccess! Registrar account '%s' created\n", username)
}
