package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smitedu/institute-backend/internal/model"
)

var ErrDuplicateEmail = errors.New("student with this email already exists")

const studentColumns = `id, first_name, last_name, email, phone, address, dob, enrollment_date, user_id, created_at, updated_at`

// StudentRepository handles student profile data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Address,
		&s.DOB, &s.EnrollmentDate, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves all students ordered by name.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY first_name, last_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStudents(rows)
}

// Search retrieves students whose first or last name contains the keyword.
func (r *StudentRepository) Search(ctx context.Context, keyword string) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students
		 WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
		 ORDER BY first_name, last_name`, keyword)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStudents(rows)
}

func collectStudents(rows pgx.Rows) ([]model.Student, error) {
	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Address,
			&s.DOB, &s.EnrollmentDate, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

// GetByUserID retrieves the student profile linked to a user account.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID))
}

// GetByEmail retrieves a student by their unique email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE email = $1`, email))
}

// ExistsByEmail reports whether a student with this email exists.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM students WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new student profile.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (first_name, last_name, email, phone, address, dob, enrollment_date, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		s.FirstName, s.LastName, s.Email, s.Phone, s.Address, s.DOB, s.EnrollmentDate, s.UserID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update modifies a student's profile. The enrollment date is never changed.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET first_name = $1, last_name = $2, email = $3, phone = $4, address = $5, dob = $6,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		s.FirstName, s.LastName, s.Email, s.Phone, s.Address, s.DOB, s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Delete removes a student together with all owned enrollments, their
// attendance records and the student's payments, in one transaction.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := deleteStudentTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// deleteStudentTx removes the student subtree inside an existing transaction,
// children first: attendance -> enrollments -> payments -> student.
func deleteStudentTx(ctx context.Context, tx pgx.Tx, studentID int) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM attendance
		 WHERE enrollment_id IN (SELECT id FROM enrollments WHERE student_id = $1)`, studentID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE student_id = $1`, studentID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE student_id = $1`, studentID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, studentID)
	return err
}
