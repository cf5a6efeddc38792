package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
	"github.com/smitedu/institute-backend/internal/validator"
)

// AttendanceHandler handles admin-facing attendance management.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// ListAttendance godoc
// GET /api/v1/admin/attendance?enrollment_id=&date=&from=&to=
// Lists attendance for one enrollment, one day, or a date range. The
// enrollment and range filters combine.
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	ctx := c.Request.Context()

	enrollmentID := 0
	if raw := c.Query("enrollment_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		enrollmentID = id
	}

	from, okFrom := parseDateQuery(c, "from")
	to, okTo := parseDateQuery(c, "to")
	if !okFrom || !okTo {
		return
	}
	if from.IsZero() != to.IsZero() {
		// A range needs both ends.
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	var (
		records []model.Attendance
		err     error
	)
	switch {
	case enrollmentID != 0 && !from.IsZero():
		records, err = h.attendanceService.ListByEnrollmentAndRange(ctx, enrollmentID, from, to)
	case enrollmentID != 0:
		records, err = h.attendanceService.ListByEnrollment(ctx, enrollmentID)
	case !from.IsZero():
		records, err = h.attendanceService.ListByDateRange(ctx, from, to)
	case c.Query("date") != "":
		date, ok := parseDateQuery(c, "date")
		if !ok {
			return
		}
		records, err = h.attendanceService.ListByDate(ctx, date)
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// GetAttendance godoc
// GET /api/v1/admin/attendance/:id
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := h.attendanceService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": record})
}

// MarkAttendance godoc
// POST /api/v1/admin/attendance
// Records one day's attendance for an enrollment. Rejected with 409 when
// the day is already marked; corrections go through PUT.
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.attendanceService.Mark(c.Request.Context(), req.EnrollmentID,
		parseDate(req.Date), req.Status)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attendance": record})
}

// UpdateAttendance godoc
// PUT /api/v1/admin/attendance/:id
// Corrects an existing record's status.
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.attendanceService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": record})
}

// DeleteAttendance godoc
// DELETE /api/v1/admin/attendance/:id
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.attendanceService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "attendance deleted successfully"})
}

// GetAttendanceSummary godoc
// GET /api/v1/admin/enrollments/:id/attendance-summary
// Returns the derived attendance metrics for one enrollment.
func (h *AttendanceHandler) GetAttendanceSummary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	summary, err := h.attendanceService.Summary(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// parseDateQuery reads an optional YYYY-MM-DD query param. A malformed
// value fails the request; an absent one returns the zero time.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return time.Time{}, false
	}
	return t, true
}
