package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smitedu/institute-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// DashboardSummary is the single-snapshot set of dashboard metrics.
type DashboardSummary struct {
	TotalStudents     int     `json:"total_students"`
	TotalCourses      int     `json:"total_courses"`
	ActiveEnrollments int     `json:"active_enrollments"`
	TotalRevenue      float64 `json:"total_revenue"`
	PendingAmount     float64 `json:"pending_amount"`
}

// GetSummary retrieves all dashboard metrics in one statement so the
// combined view is consistent as of a single snapshot.
func (r *DashboardRepository) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	s := &DashboardSummary{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM enrollments WHERE status = $1),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $2),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $3)`,
		model.EnrollmentActive, model.PaymentCompleted, model.PaymentPending,
	).Scan(&s.TotalStudents, &s.TotalCourses, &s.ActiveEnrollments, &s.TotalRevenue, &s.PendingAmount)
	if err != nil {
		return nil, err
	}
	return s, nil
}
