package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/smitedu/institute-backend/internal/repository"
	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
)

// failFromError maps domain errors to an HTTP status and error code.
// Anything unrecognized is a 500.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrAccessDenied):
		response.Fail(c, http.StatusForbidden, response.ErrAccessDenied)
	case errors.Is(err, service.ErrUnknownRole):
		response.Fail(c, http.StatusForbidden, response.ErrUnknownRole)
	case errors.Is(err, service.ErrInvalidState):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidState)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, repository.ErrDuplicateEnrollment):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateEnrollment)
	case errors.Is(err, repository.ErrDuplicateAttendance):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateAttendance)
	case errors.Is(err, repository.ErrDuplicateUsername):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateUsername)
	case errors.Is(err, repository.ErrDuplicateEmail):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateEmail)
	case errors.Is(err, repository.ErrDuplicateRoleName):
		response.Fail(c, http.StatusConflict, response.ErrInvalidState)
	case errors.Is(err, repository.ErrRoleInUse):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case isPgCode(err, "23503"):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case isPgCode(err, "23505"):
		response.Fail(c, http.StatusConflict, response.ErrInvalidState)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// parseID reads the :id route parameter; a non-numeric ID fails the request.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD string already validated by binding tags.
func parseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
