package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/config"
	"github.com/campusgrid/registrar/internal/handler"
	"github.com/campusgrid/registrar/internal/middleware"
	"github.com/campusgrid/registrar/internal/model"
	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth             *handler.AuthHandler
	Student          *handler.StudentHandler
	Instructor       *handler.InstructorHandler
	Course           *handler.CourseHandler
	Section          *handler.SectionHandler
	Enrollment       *handler.EnrollmentHandler
	Setting          *handler.SettingHandler
	Summary          *handler.SummaryHandler
	StudentPortal    *handler.StudentPortalHandler
	InstructorPortal *handler.InstructorPortalHandler
	WS               *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Global so every response carries a request ID in its meta block.
	router.Use(response.RequestID())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		authed := auth.Group("")
		authed.Use(
			middleware.RequireAuth(authService),
			middleware.CheckActiveSession(authService),
		)
		{
			authed.POST("/logout", handlers.Auth.Logout)
			authed.GET("/me", handlers.Auth.Me)
			authed.POST("/password", handlers.Auth.ChangePassword)
		}
	}

	// ─── 2. Student Group (JWT + Active Session) ───────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
		middleware.RequireRole(model.RoleStudent),
	)
	{
		studentAPI.GET("/overview", handlers.StudentPortal.GetOverview)
		studentAPI.GET("/catalog", handlers.StudentPortal.GetCatalog)
		studentAPI.POST("/enrollments", handlers.StudentPortal.Admit)
		studentAPI.DELETE("/enrollments/:id", handlers.StudentPortal.Withdraw)
		studentAPI.GET("/transcript", handlers.StudentPortal.GetTranscript)
	}

	// ─── 3. Instructor Group (JWT + Active Session) ────────────────────
	instructorAPI := router.Group("/api/v1/instructor")
	instructorAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
		middleware.RequireRole(model.RoleInstructor),
	)
	{
		instructorAPI.GET("/overview", handlers.InstructorPortal.GetOverview)
		instructorAPI.GET("/sections", handlers.InstructorPortal.GetSections)
		instructorAPI.GET("/sections/:id/roster", handlers.InstructorPortal.GetRoster)
		instructorAPI.PUT("/enrollments/:id/grade", handlers.InstructorPortal.RecordGrade)
	}

	// ─── 4. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/sections/:id/seats", handlers.WS.SectionSeatStream)
	}

	// ─── 5. Admin Group (JWT + Registrar Role) ─────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
		middleware.RequireRole(model.RoleRegistrar),
	)
	{
		adminAPI.GET("/summary", handlers.Summary.GetCounts)

		// Student management
		adminAPI.GET("/students", handlers.Student.GetAll)
		adminAPI.GET("/students/:id", handlers.Student.GetByID)
		adminAPI.POST("/students", handlers.Student.Create)
		adminAPI.PUT("/students/:id", handlers.Student.Update)
		adminAPI.DELETE("/students/:id", handlers.Student.Delete)

		// Instructor management
		adminAPI.GET("/instructors", handlers.Instructor.GetAll)
		adminAPI.GET("/instructors/:id", handlers.Instructor.GetByID)
		adminAPI.POST("/instructors", handlers.Instructor.Create)
		adminAPI.PUT("/instructors/:id", handlers.Instructor.Update)
		adminAPI.DELETE("/instructors/:id", handlers.Instructor.Delete)

		// Course catalog
		adminAPI.GET("/courses", handlers.Course.GetAll)
		adminAPI.GET("/courses/:id", handlers.Course.GetByID)
		adminAPI.POST("/courses", handlers.Course.Create)
		adminAPI.PUT("/courses/:id", handlers.Course.Update)
		adminAPI.DELETE("/courses/:id", handlers.Course.Delete)

		// Section management
		adminAPI.GET("/sections", handlers.Section.GetAll)
		adminAPI.GET("/sections/:id", handlers.Section.GetByID)
		adminAPI.POST("/sections", handlers.Section.Create)
		adminAPI.PUT("/sections/:id", handlers.Section.Update)
		adminAPI.DELETE("/sections/:id", handlers.Section.Delete)
		adminAPI.GET("/sections/:id/roster", handlers.Section.GetRoster)

		// Enrollment overrides
		adminAPI.POST("/enrollments", handlers.Enrollment.Create)
		adminAPI.DELETE("/enrollments/:id", handlers.Enrollment.Delete)

		// Settings
		adminAPI.GET("/settings", handlers.Setting.GetAll)
		adminAPI.PUT("/settings", handlers.Setting.Update)
	}

	return router
}
