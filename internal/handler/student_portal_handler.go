package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/middleware"
	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
)

// StudentPortalHandler serves the student self-service endpoints. Every
// route is pinned to the caller's own student profile; other students'
// records are out of scope.
type StudentPortalHandler struct {
	studentService      *service.StudentService
	courseService       *service.CourseService
	enrollmentService   *service.EnrollmentService
	attendanceService   *service.AttendanceService
	paymentService      *service.PaymentService
	notificationService *service.NotificationService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	studentService *service.StudentService,
	courseService *service.CourseService,
	enrollmentService *service.EnrollmentService,
	attendanceService *service.AttendanceService,
	paymentService *service.PaymentService,
	notificationService *service.NotificationService,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		studentService:      studentService,
		courseService:       courseService,
		enrollmentService:   enrollmentService,
		attendanceService:   attendanceService,
		paymentService:      paymentService,
		notificationService: notificationService,
	}
}

// ownStudentID returns the caller's student profile ID, failing the
// request when the account has no linked profile.
func (h *StudentPortalHandler) ownStudentID(c *gin.Context) (int, bool) {
	scope := middleware.GetScope(c)
	if scope.StudentID == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return 0, false
	}
	return scope.StudentID, true
}

// GetMyProfile godoc
// GET /api/v1/student/profile
func (h *StudentPortalHandler) GetMyProfile(c *gin.Context) {
	studentID, ok := h.ownStudentID(c)
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), studentID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// GetMyDashboard godoc
// GET /api/v1/student/dashboard
// One-call view for the portal landing page: profile, enrollments and the
// recent notification feed.
func (h *StudentPortalHandler) GetMyDashboard(c *gin.Context) {
	studentID, ok := h.ownStudentID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	student, err := h.studentService.GetByID(ctx, studentID)
	if err != nil {
		failFromError(c, err)
		return
	}
	enrollments, err := h.enrollmentService.ListByStudent(ctx, studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	notifications, err := h.notificationService.ListRecent(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student":       student,
		"enrollments":   enrollments,
		"notifications": notifications,
	})
}

// ListMyCourses godoc
// GET /api/v1/student/courses
// Lists the courses the caller has ever enrolled in.
func (h *StudentPortalHandler) ListMyCourses(c *gin.Context) {
	studentID, ok := h.ownStudentID(c)
	if !ok {
		return
	}

	courses, err := h.courseService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// ListMyEnrollments godoc
// GET /api/v1/student/enrollments
func (h *StudentPortalHandler) ListMyEnrollments(c *gin.Context) {
	studentID, ok := h.ownStudentID(c)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// requireOwnEnrollment loads the enrollment at :id and verifies it belongs
// to the caller. A foreign enrollment fails with 403, never silently leaks.
func (h *StudentPortalHandler) requireOwnEnrollment(c *gin.Context) (int, bool) {
	id, ok := parseID(c)
	if !ok {
		return 0, false
	}

	scope := middleware.GetScope(c)
	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return 0, false
	}
	if !scope.CanAccessStudent(enrollment.StudentID) {
		response.Fail(c, http.StatusForbidden, response.ErrAccessDenied)
		return 0, false
	}
	return id, true
}

// ListMyAttendance godoc
// GET /api/v1/student/enrollments/:id/attendance
func (h *StudentPortalHandler) ListMyAttendance(c *gin.Context) {
	enrollmentID, ok := h.requireOwnEnrollment(c)
	if !ok {
		return
	}

	records, err := h.attendanceService.ListByEnrollment(c.Request.Context(), enrollmentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// GetMyAttendanceSummary godoc
// GET /api/v1/student/enrollments/:id/attendance-summary
func (h *StudentPortalHandler) GetMyAttendanceSummary(c *gin.Context) {
	enrollmentID, ok := h.requireOwnEnrollment(c)
	if !ok {
		return
	}

	summary, err := h.attendanceService.Summary(c.Request.Context(), enrollmentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// ListMyPayments godoc
// GET /api/v1/student/payments?window=pending
// Lists the caller's payments, or only their PENDING ones.
func (h *StudentPortalHandler) ListMyPayments(c *gin.Context) {
	studentID, ok := h.ownStudentID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if c.Query("window") == "pending" {
		payments, err := h.paymentService.ListPendingByStudent(ctx, studentID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"payments": payments})
		return
	}

	payments, err := h.paymentService.ListByStudent(ctx, studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// GetMyPaymentSummary godoc
// GET /api/v1/student/payments/summary
// Returns the caller's total completed payments.
func (h *StudentPortalHandler) GetMyPaymentSummary(c *gin.Context) {
	studentID, ok := h.ownStudentID(c)
	if !ok {
		return
	}

	total, err := h.paymentService.TotalPaidByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"total_paid": total})
}

// ListMyNotifications godoc
// GET /api/v1/student/notifications
// Returns the last 7 days of broadcast notifications.
func (h *StudentPortalHandler) ListMyNotifications(c *gin.Context) {
	notifications, err := h.notificationService.ListRecent(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": notifications})
}
