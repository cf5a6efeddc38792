package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
	"github.com/smitedu/institute-backend/internal/validator"
)

// EnrollmentHandler handles admin-facing enrollment management.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// ListEnrollments godoc
// GET /api/v1/admin/enrollments?student_id=&course_id=&status=
// Lists enrollments, optionally filtered by student, course or status.
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		enrollments []model.Enrollment
		err         error
	)
	switch {
	case c.Query("student_id") != "":
		studentID, convErr := strconv.Atoi(c.Query("student_id"))
		if convErr != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		enrollments, err = h.enrollmentService.ListByStudent(ctx, studentID)
	case c.Query("course_id") != "":
		courseID, convErr := strconv.Atoi(c.Query("course_id"))
		if convErr != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		enrollments, err = h.enrollmentService.ListByCourse(ctx, courseID)
	case c.Query("status") != "":
		enrollments, err = h.enrollmentService.ListByStatus(ctx, model.EnrollmentStatus(c.Query("status")))
	default:
		enrollments, err = h.enrollmentService.List(ctx)
	}
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// GetEnrollmentStats godoc
// GET /api/v1/admin/enrollments/stats?course_id=
// Returns the ACTIVE enrollment count, either overall or for one course.
func (h *EnrollmentHandler) GetEnrollmentStats(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("course_id"); raw != "" {
		courseID, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		count, err := h.enrollmentService.CountByCourse(ctx, courseID)
		if err != nil {
			failFromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"course_id": courseID, "enrollment_count": count})
		return
	}

	count, err := h.enrollmentService.CountActive(ctx)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"active_count": count})
}

// GetEnrollment godoc
// GET /api/v1/admin/enrollments/:id
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}

// CreateEnrollment godoc
// POST /api/v1/admin/enrollments
// Enrolls a student in a course. Rejected with 409 when the student
// already holds an ACTIVE enrollment in the course.
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var req model.CreateEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// UpdateEnrollmentStatus godoc
// PUT /api/v1/admin/enrollments/:id
// Moves an enrollment to a new lifecycle state.
func (h *EnrollmentHandler) UpdateEnrollmentStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}

// DeleteEnrollment godoc
// DELETE /api/v1/admin/enrollments/:id
// Removes the enrollment and its attendance records.
func (h *EnrollmentHandler) DeleteEnrollment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.enrollmentService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment deleted successfully"})
}
