package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/config"
	"github.com/smitedu/institute-backend/internal/handler"
	"github.com/smitedu/institute-backend/internal/middleware"
	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth               *handler.AuthHandler
	User               *handler.UserHandler
	Role               *handler.RoleHandler
	Student            *handler.StudentHandler
	Course             *handler.CourseHandler
	Enrollment         *handler.EnrollmentHandler
	Attendance         *handler.AttendanceHandler
	Payment            *handler.PaymentHandler
	Notification       *handler.NotificationHandler
	Dashboard          *handler.DashboardHandler
	StudentPortal      *handler.StudentPortalHandler
	NotificationStream *handler.NotificationStreamHandler
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

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

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
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Admin Group (JWT + Admin Scope) ────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.NoStore(),
		middleware.RequireAuth(authService),
		middleware.CheckSingleSession(authService),
		middleware.RequireAdmin(),
	)
	{
		// Dashboard
		adminAPI.GET("/dashboard", handlers.Dashboard.GetDashboard)

		// Account management
		adminAPI.GET("/users", handlers.User.ListUsers)
		adminAPI.GET("/users/:id", handlers.User.GetUser)
		adminAPI.POST("/users", handlers.User.CreateUser)
		adminAPI.PUT("/users/:id", handlers.User.UpdateUser)
		adminAPI.PUT("/users/:id/password", handlers.User.UpdateUserPassword)
		adminAPI.DELETE("/users/:id", handlers.User.DeleteUser)

		// Role management
		adminAPI.GET("/roles", handlers.Role.ListRoles)
		adminAPI.GET("/roles/:id", handlers.Role.GetRole)
		adminAPI.POST("/roles", handlers.Role.CreateRole)
		adminAPI.PUT("/roles/:id", handlers.Role.UpdateRole)
		adminAPI.DELETE("/roles/:id", handlers.Role.DeleteRole)

		// Student management
		adminAPI.GET("/students", handlers.Student.ListStudents)
		adminAPI.GET("/students/:id", handlers.Student.GetStudent)
		adminAPI.POST("/students", handlers.Student.CreateStudent)
		adminAPI.PUT("/students/:id", handlers.Student.UpdateStudent)
		adminAPI.DELETE("/students/:id", handlers.Student.DeleteStudent)

		// Course management
		adminAPI.GET("/courses", handlers.Course.ListCourses)
		adminAPI.GET("/courses/:id", handlers.Course.GetCourse)
		adminAPI.POST("/courses", handlers.Course.CreateCourse)
		adminAPI.PUT("/courses/:id", handlers.Course.UpdateCourse)
		adminAPI.DELETE("/courses/:id", handlers.Course.DeleteCourse)

		// Enrollment management
		adminAPI.GET("/enrollments", handlers.Enrollment.ListEnrollments)
		adminAPI.GET("/enrollments/stats", handlers.Enrollment.GetEnrollmentStats)
		adminAPI.GET("/enrollments/:id", handlers.Enrollment.GetEnrollment)
		adminAPI.POST("/enrollments", handlers.Enrollment.CreateEnrollment)
		adminAPI.PUT("/enrollments/:id", handlers.Enrollment.UpdateEnrollmentStatus)
		adminAPI.DELETE("/enrollments/:id", handlers.Enrollment.DeleteEnrollment)
		adminAPI.GET("/enrollments/:id/attendance-summary", handlers.Attendance.GetAttendanceSummary)

		// Attendance management
		adminAPI.GET("/attendance", handlers.Attendance.ListAttendance)
		adminAPI.GET("/attendance/:id", handlers.Attendance.GetAttendance)
		adminAPI.POST("/attendance", handlers.Attendance.MarkAttendance)
		adminAPI.PUT("/attendance/:id", handlers.Attendance.UpdateAttendance)
		adminAPI.DELETE("/attendance/:id", handlers.Attendance.DeleteAttendance)

		// Payment management
		adminAPI.GET("/payments", handlers.Payment.ListPayments)
		adminAPI.GET("/payments/summary", handlers.Payment.GetRevenueSummary)
		adminAPI.GET("/payments/:id", handlers.Payment.GetPayment)
		adminAPI.POST("/payments", handlers.Payment.CreatePayment)
		adminAPI.PUT("/payments/:id", handlers.Payment.UpdatePayment)
		adminAPI.DELETE("/payments/:id", handlers.Payment.DeletePayment)

		// Notification management
		adminAPI.GET("/notifications", handlers.Notification.ListNotifications)
		adminAPI.GET("/notifications/:id", handlers.Notification.GetNotification)
		adminAPI.POST("/notifications", handlers.Notification.CreateNotification)
		adminAPI.PUT("/notifications/:id", handlers.Notification.UpdateNotification)
		adminAPI.DELETE("/notifications/:id", handlers.Notification.DeleteNotification)
	}

	// ─── 3. Student Group (JWT + Single Session + Student Scope) ───────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.NoStore(),
		middleware.RequireAuth(authService),
		middleware.CheckSingleSession(authService),
		middleware.RequireStudent(),
	)
	{
		studentAPI.GET("/dashboard", handlers.StudentPortal.GetMyDashboard)
		studentAPI.GET("/profile", handlers.StudentPortal.GetMyProfile)
		studentAPI.GET("/courses", handlers.StudentPortal.ListMyCourses)
		studentAPI.GET("/enrollments", handlers.StudentPortal.ListMyEnrollments)
		studentAPI.GET("/enrollments/:id/attendance", handlers.StudentPortal.ListMyAttendance)
		studentAPI.GET("/enrollments/:id/attendance-summary", handlers.StudentPortal.GetMyAttendanceSummary)
		studentAPI.GET("/payments", handlers.StudentPortal.ListMyPayments)
		studentAPI.GET("/payments/summary", handlers.StudentPortal.GetMyPaymentSummary)
		studentAPI.GET("/notifications", handlers.StudentPortal.ListMyNotifications)
	}

	// ─── 4. WebSocket Group (WS Query-Token Auth) ──────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/notifications/stream", handlers.NotificationStream.NotificationStream)
	}

	return router
}
