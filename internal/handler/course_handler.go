package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
	"github.com/smitedu/institute-backend/internal/validator"
)

// CourseHandler handles admin-facing course management.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCourses godoc
// GET /api/v1/admin/courses?q=keyword&window=active|upcoming
// Lists all courses, searches by name, or filters to courses in session /
// not yet started.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var (
		courses []model.Course
		err     error
	)
	switch {
	case c.Query("q") != "":
		courses, err = h.courseService.Search(c.Request.Context(), c.Query("q"))
	case c.Query("window") == "active":
		courses, err = h.courseService.ListActive(c.Request.Context())
	case c.Query("window") == "upcoming":
		courses, err = h.courseService.ListUpcoming(c.Request.Context())
	default:
		courses, err = h.courseService.List(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetCourse godoc
// GET /api/v1/admin/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// CreateCourse godoc
// POST /api/v1/admin/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req,
		parseDate(req.StartDate), parseDate(req.EndDate))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// UpdateCourse godoc
// PUT /api/v1/admin/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, &req,
		parseDate(req.StartDate), parseDate(req.EndDate))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// DeleteCourse godoc
// DELETE /api/v1/admin/courses/:id
// Removes the course and its enrollments with their attendance.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}
