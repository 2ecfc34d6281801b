package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/config"
	"github.com/campusgrid/registrar/internal/database"
	"github.com/campusgrid/registrar/internal/logger"
	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/repository"
	"github.com/campusgrid/registrar/internal/schema"
	"github.com/campusgrid/registrar/internal/service"
)

// Seeds a small demo campus: a few courses with sections, instructors to
// teach them and a batch of students ready to enroll. Safe to re-run;
// records that already exist are skipped.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := schema.NewManager(pool, log).EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Schema reconciliation failed")
	}

	accountRepo := repository.NewAccountRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	instructorRepo := repository.NewInstructorRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	sectionRepo := repository.NewSectionRepository(pool)

	authService := service.NewAuthService(cfg, accountRepo, nil)
	studentService := service.NewStudentService(studentRepo, authService, log)
	instructorService := service.NewInstructorService(instructorRepo, authService, log)
	courseService := service.NewCourseService(courseRepo)
	sectionService := service.NewSectionService(sectionRepo)

	fmt.Println("=== Seeding Demo Campus ===")

	instructors := []model.Instructor{
		{Name: "Helen Okafor", Email: "h.okafor@campus.test", Department: "Computer Science"},
		{Name: "Marcus Lindqvist", Email: "m.lindqvist@campus.test", Department: "Mathematics"},
		{Name: "Priya Raman", Email: "p.raman@campus.test", Department: "Physics"},
	}
	instructorIDs := make([]int64, 0, len(instructors))
	for i := range instructors {
		if err := instructorService.Create(ctx, &instructors[i], "changeme123"); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				existing, gerr := instructorService.GetByEmail(ctx, instructors[i].Email)
				if gerr != nil {
					log.Fatal().Err(gerr).Msg("Failed to load existing instructor")
				}
				instructorIDs = append(instructorIDs, existing.ID)
				continue
			}
			log.Fatal().Err(err).Str("email", instructors[i].Email).Msg("Failed to create instructor")
		}
		instructorIDs = append(instructorIDs, instructors[i].ID)
	}
	fmt.Printf("Instructors ready: %d\n", len(instructorIDs))

	courses := []model.Course{
		{Code: "CS101", Title: "Introduction to Programming", Credits: 4},
		{Code: "MA201", Title: "Linear Algebra", Credits: 3},
		{Code: "PH110", Title: "Classical Mechanics", Credits: 4},
	}
	courseIDs := make([]int64, 0, len(courses))
	for i := range courses {
		if err := courseService.Create(ctx, &courses[i]); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				fmt.Printf("Course %s already exists, skipping\n", courses[i].Code)
				continue
			}
			log.Fatal().Err(err).Str("code", courses[i].Code).Msg("Failed to create course")
		}
		courseIDs = append(courseIDs, courses[i].ID)
	}

	room := "B-204"
	for i, courseID := range courseIDs {
		section := &model.Section{
			CourseID:     courseID,
			InstructorID: &instructorIDs[i%len(instructorIDs)],
			Name:         "Main",
			Capacity:     30,
			Room:         &room,
			Timetable:    "Mon/Wed 10:00-11:30",
		}
		if err := sectionService.Create(ctx, section); err != nil {
			log.Fatal().Err(err).Int64("course_id", courseID).Msg("Failed to create section")
		}
	}
	fmt.Printf("Sections created: %d\n", len(courseIDs))

	successCount := 0
	for i := 1; i <= 20; i++ {
		student := &model.Student{
			Name:    fmt.Sprintf("Demo Student %02d", i),
			Email:   fmt.Sprintf("student%02d@campus.test", i),
			Program: "Undeclared",
		}
		if err := studentService.Create(ctx, student, "changeme123"); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			log.Fatal().Err(err).Str("email", student.Email).Msg("Failed to create student")
		}
		successCount++
	}
	fmt.Printf("Students created: %d\n", successCount)

	fmt.Println("Done. Default password for all seeded accounts: changeme123")
}
