package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smitedu/institute-backend/internal/model"
)

const paymentColumns = `p.id, p.student_id, p.amount, p.payment_date, p.method, p.status,
	p.created_at, p.updated_at, s.first_name || ' ' || s.last_name`

const paymentJoin = ` FROM payments p
	JOIN students s ON s.id = p.student_id`

// PaymentRepository handles payment data access. Monetary sums are computed
// in SQL over the NUMERIC column so aggregation never rounds in binary
// floats, and COALESCE keeps empty sums at zero.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func collectPayments(rows pgx.Rows) ([]model.Payment, error) {
	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.PaymentDate, &p.Method, &p.Status,
			&p.CreatedAt, &p.UpdatedAt, &p.StudentName); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// List retrieves all payments, newest first.
func (r *PaymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+paymentJoin+` ORDER BY p.payment_date DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListByStudent retrieves one student's payments, newest first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+paymentJoin+`
		 WHERE p.student_id = $1
		 ORDER BY p.payment_date DESC, p.id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListByStatus retrieves all payments with the given status, newest first.
func (r *PaymentRepository) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+paymentJoin+`
		 WHERE p.status = $1
		 ORDER BY p.payment_date DESC, p.id DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListPendingByStudent retrieves one student's PENDING payments, newest first.
func (r *PaymentRepository) ListPendingByStudent(ctx context.Context, studentID int) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+paymentJoin+`
		 WHERE p.student_id = $1 AND p.status = $2
		 ORDER BY p.payment_date DESC, p.id DESC`, studentID, model.PaymentPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListSince retrieves payments dated on or after the given day, newest first.
func (r *PaymentRepository) ListSince(ctx context.Context, since time.Time) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+paymentJoin+`
		 WHERE p.payment_date >= $1
		 ORDER BY p.payment_date DESC, p.id DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id int) (*model.Payment, error) {
	p := &model.Payment{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+paymentJoin+` WHERE p.id = $1`, id,
	).Scan(&p.ID, &p.StudentID, &p.Amount, &p.PaymentDate, &p.Method, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.StudentName)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new payment.
func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO payments (student_id, amount, payment_date, method, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		p.StudentID, p.Amount, p.PaymentDate, p.Method, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update modifies a payment's amount, method and status. The payment date
// and owning student are immutable.
func (r *PaymentRepository) Update(ctx context.Context, p *model.Payment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE payments
		 SET amount = $1, method = $2, status = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		p.Amount, p.Method, p.Status, p.ID)
	return err
}

// Delete removes a payment by ID.
func (r *PaymentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

// SumByStatus totals payment amounts with the given status; 0 when none.
func (r *PaymentRepository) SumByStatus(ctx context.Context, status model.PaymentStatus) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1`, status,
	).Scan(&total)
	return total, err
}

// SumCompletedByStudent totals one student's COMPLETED payments; 0 when none.
func (r *PaymentRepository) SumCompletedByStudent(ctx context.Context, studentID int) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments
		 WHERE student_id = $1 AND status = $2`, studentID, model.PaymentCompleted,
	).Scan(&total)
	return total, err
}

// CountByStatus counts payments with the given status.
func (r *PaymentRepository) CountByStatus(ctx context.Context, status model.PaymentStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE status = $1`, status,
	).Scan(&count)
	return count, err
}
