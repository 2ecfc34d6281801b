package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgrid/registrar/internal/config"
	"github.com/campusgrid/registrar/internal/database"
	"github.com/campusgrid/registrar/internal/handler"
	"github.com/campusgrid/registrar/internal/logger"
	"github.com/campusgrid/registrar/internal/repository"
	"github.com/campusgrid/registrar/internal/router"
	"github.com/campusgrid/registrar/internal/schema"
	"github.com/campusgrid/registrar/internal/service"
	"github.com/campusgrid/registrar/internal/validator"
	"github.com/campusgrid/registrar/internal/websocket"
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
		Msg("Starting Registrar")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Reconcile Schema ──────────────────────────────────────────────
	// The server refuses to start against a schema it could not bring up
	// to date. A half-migrated sections table would corrupt admissions.
	if err := schema.NewManager(pool, log).EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Schema reconciliation failed")
	}

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	accountRepo := repository.NewAccountRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	instructorRepo := repository.NewInstructorRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	sectionRepo := repository.NewSectionRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	summaryRepo := repository.NewSummaryRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	seatHub := websocket.NewSeatHub(log)

	authService := service.NewAuthService(cfg, accountRepo, rdb)
	studentService := service.NewStudentService(studentRepo, authService, log)
	instructorService := service.NewInstructorService(instructorRepo, authService, log)
	courseService := service.NewCourseService(courseRepo)
	sectionService := service.NewSectionService(sectionRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, seatHub, log)
	gradeService := service.NewGradeService(gradeRepo, enrollmentRepo, sectionRepo, log)
	settingService := service.NewSettingService(settingRepo, log)
	summaryService := service.NewSummaryService(summaryRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:             handler.NewAuthHandler(authService, studentService, instructorService),
		Student:          handler.NewStudentHandler(studentService),
		Instructor:       handler.NewInstructorHandler(instructorService),
		Course:           handler.NewCourseHandler(courseService),
		Section:          handler.NewSectionHandler(sectionService, enrollmentService),
		Enrollment:       handler.NewEnrollmentHandler(enrollmentService),
		Setting:          handler.NewSettingHandler(settingService),
		Summary:          handler.NewSummaryHandler(summaryService),
		StudentPortal:    handler.NewStudentPortalHandler(studentService, sectionService, enrollmentService, summaryService),
		InstructorPortal: handler.NewInstructorPortalHandler(instructorService, sectionService, enrollmentService, gradeService, summaryService),
		WS:               handler.NewWSHandler(seatHub, enrollmentService, log, cfg.AllowedOrigins),
	}

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
