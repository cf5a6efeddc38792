package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smitedu/institute-backend/internal/model"
)

// ErrDuplicateAttendance is returned when attendance is already marked for the
// same (enrollment, date). The unique index on the attendance table is the
// authoritative guard; this error is also produced by the service pre-check.
var ErrDuplicateAttendance = errors.New("attendance already marked for this date")

const attendanceColumns = `id, enrollment_id, date, status, created_at, updated_at`

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func collectAttendance(rows pgx.Rows) ([]model.Attendance, error) {
	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.EnrollmentID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// ListByEnrollment retrieves all attendance records for one enrollment.
func (r *AttendanceRepository) ListByEnrollment(ctx context.Context, enrollmentID int) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance
		 WHERE enrollment_id = $1 ORDER BY date DESC`, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// ListByDate retrieves all attendance records marked on one day.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance
		 WHERE date = $1 ORDER BY enrollment_id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// ListByDateRange retrieves attendance records within [from, to].
func (r *AttendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance
		 WHERE date BETWEEN $1 AND $2 ORDER BY date DESC, enrollment_id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// ListByEnrollmentAndRange retrieves one enrollment's records within [from, to].
func (r *AttendanceRepository) ListByEnrollmentAndRange(ctx context.Context, enrollmentID int, from, to time.Time) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance
		 WHERE enrollment_id = $1 AND date BETWEEN $2 AND $3
		 ORDER BY date DESC`, enrollmentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// GetByID retrieves an attendance record by ID.
func (r *AttendanceRepository) GetByID(ctx context.Context, id int) (*model.Attendance, error) {
	a := &model.Attendance{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE id = $1`, id,
	).Scan(&a.ID, &a.EnrollmentID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ExistsByEnrollmentAndDate reports whether attendance is already marked for
// the (enrollment, date) pair.
func (r *AttendanceRepository) ExistsByEnrollmentAndDate(ctx context.Context, enrollmentID int, date time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendance WHERE enrollment_id = $1 AND date = $2)`,
		enrollmentID, date,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, a *model.Attendance) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance (enrollment_id, date, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		a.EnrollmentID, a.Date, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAttendance
		}
		return err
	}
	return nil
}

// UpdateStatus corrects the status of an existing record. The (enrollment,
// date) pair is immutable, so updates can never create a duplicate.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id int, status model.AttendanceStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attendance SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id)
	return err
}

// Delete removes an attendance record by ID.
func (r *AttendanceRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	return err
}

// CountByEnrollment counts all attendance records for one enrollment.
func (r *AttendanceRepository) CountByEnrollment(ctx context.Context, enrollmentID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance WHERE enrollment_id = $1`, enrollmentID,
	).Scan(&count)
	return count, err
}

// CountByEnrollmentAndStatus counts one enrollment's records with a status.
func (r *AttendanceRepository) CountByEnrollmentAndStatus(ctx context.Context, enrollmentID int, status model.AttendanceStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance WHERE enrollment_id = $1 AND status = $2`,
		enrollmentID, status,
	).Scan(&count)
	return count, err
}
