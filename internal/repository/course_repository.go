package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smitedu/institute-backend/internal/model"
)

const courseColumns = `id, name, description, duration_months, fee, start_date, end_date, created_at, updated_at`

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func collectCourses(rows pgx.Rows) ([]model.Course, error) {
	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DurationMonths, &c.Fee,
			&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// List retrieves all courses ordered by start date.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

// Search retrieves courses whose name contains the keyword.
func (r *CourseRepository) Search(ctx context.Context, keyword string) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses
		 WHERE name ILIKE '%' || $1 || '%'
		 ORDER BY start_date, id`, keyword)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

// ListActive retrieves courses currently running on the given day.
func (r *CourseRepository) ListActive(ctx context.Context, today time.Time) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses
		 WHERE start_date <= $1 AND end_date >= $1
		 ORDER BY start_date, id`, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

// ListByStudent retrieves the courses a student has ever enrolled in.
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT c.id, c.name, c.description, c.duration_months, c.fee,
		        c.start_date, c.end_date, c.created_at, c.updated_at
		 FROM courses c
		 JOIN enrollments e ON e.course_id = c.id
		 WHERE e.student_id = $1
		 ORDER BY c.start_date, c.id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

// ListUpcoming retrieves courses that have not started yet.
func (r *CourseRepository) ListUpcoming(ctx context.Context, today time.Time) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses
		 WHERE start_date > $1
		 ORDER BY start_date, id`, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.DurationMonths, &c.Fee,
		&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (name, description, duration_months, fee, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.DurationMonths, c.Fee, c.StartDate, c.EndDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies a course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET name = $1, description = $2, duration_months = $3, fee = $4,
		     start_date = $5, end_date = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		c.Name, c.Description, c.DurationMonths, c.Fee, c.StartDate, c.EndDate, c.ID)
	return err
}

// Delete removes a course together with its enrollments and their attendance
// records, in one transaction, children first.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM attendance
		 WHERE enrollment_id IN (SELECT id FROM enrollments WHERE course_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
