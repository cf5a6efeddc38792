package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smitedu/institute-backend/internal/model"
)

// ErrDuplicateEnrollment is returned when an ACTIVE enrollment already exists
// for the same (student, course) pair. The partial unique index on the
// enrollments table is the authoritative guard; this error is also produced
// by the service-level pre-check.
var ErrDuplicateEnrollment = errors.New("student is already enrolled in this course")

const enrollmentColumns = `e.id, e.student_id, e.course_id, e.enrollment_date, e.status,
	e.created_at, e.updated_at, s.first_name || ' ' || s.last_name, c.name`

const enrollmentJoin = ` FROM enrollments e
	JOIN students s ON s.id = e.student_id
	JOIN courses c ON c.id = e.course_id`

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

func collectEnrollments(rows pgx.Rows) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Status,
			&e.CreatedAt, &e.UpdatedAt, &e.StudentName, &e.CourseName); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// List retrieves all enrollments with student and course names.
func (r *EnrollmentRepository) List(ctx context.Context) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+enrollmentColumns+enrollmentJoin+` ORDER BY e.enrollment_date DESC, e.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEnrollments(rows)
}

// ListByStudent retrieves all enrollments for one student.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+enrollmentColumns+enrollmentJoin+`
		 WHERE e.student_id = $1
		 ORDER BY e.enrollment_date DESC, e.id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEnrollments(rows)
}

// ListByCourse retrieves all enrollments for one course.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+enrollmentColumns+enrollmentJoin+`
		 WHERE e.course_id = $1
		 ORDER BY e.enrollment_date DESC, e.id DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEnrollments(rows)
}

// ListByStatus retrieves all enrollments with the given status.
func (r *EnrollmentRepository) ListByStatus(ctx context.Context, status model.EnrollmentStatus) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+enrollmentColumns+enrollmentJoin+`
		 WHERE e.status = $1
		 ORDER BY e.enrollment_date DESC, e.id DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEnrollments(rows)
}

// GetByID retrieves an enrollment by ID.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+enrollmentColumns+enrollmentJoin+` WHERE e.id = $1`, id,
	).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Status,
		&e.CreatedAt, &e.UpdatedAt, &e.StudentName, &e.CourseName)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ExistsActivePair reports whether an ACTIVE enrollment exists for the pair.
func (r *EnrollmentRepository) ExistsActivePair(ctx context.Context, studentID, courseID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND course_id = $2 AND status = $3
		)`, studentID, courseID, model.EnrollmentActive,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, course_id, enrollment_date, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		e.StudentID, e.CourseID, e.EnrollmentDate, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEnrollment
		}
		return err
	}
	return nil
}

// UpdateStatus changes an enrollment's status. The enrollment date and the
// (student, course) pair are immutable.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int, status model.EnrollmentStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEnrollment
		}
		return err
	}
	return nil
}

// Delete removes an enrollment and its attendance records in one transaction.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM attendance WHERE enrollment_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CountByStatus counts enrollments with the given status.
func (r *EnrollmentRepository) CountByStatus(ctx context.Context, status model.EnrollmentStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE status = $1`, status,
	).Scan(&count)
	return count, err
}

// CountByCourse counts enrollments for a course.
func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1`, courseID,
	).Scan(&count)
	return count, err
}
