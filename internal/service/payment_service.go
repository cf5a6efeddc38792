package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smitedu/institute-backend/internal/model"
)

type paymentStore interface {
	List(ctx context.Context) ([]model.Payment, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Payment, error)
	ListByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error)
	ListPendingByStudent(ctx context.Context, studentID int) ([]model.Payment, error)
	ListSince(ctx context.Context, since time.Time) ([]model.Payment, error)
	GetByID(ctx context.Context, id int) (*model.Payment, error)
	Create(ctx context.Context, payment *model.Payment) error
	Update(ctx context.Context, payment *model.Payment) error
	Delete(ctx context.Context, id int) error
	SumByStatus(ctx context.Context, status model.PaymentStatus) (float64, error)
	SumCompletedByStudent(ctx context.Context, studentID int) (float64, error)
	CountByStatus(ctx context.Context, status model.PaymentStatus) (int, error)
}

// recentPaymentsWindow is how far back the recent-payments feed reaches.
const recentPaymentsWindow = 30 * 24 * time.Hour

// PaymentService handles payment records and the revenue aggregations.
type PaymentService struct {
	repo paymentStore
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(repo paymentStore) *PaymentService {
	return &PaymentService{repo: repo}
}

// List retrieves all payments.
func (s *PaymentService) List(ctx context.Context) ([]model.Payment, error) {
	return s.repo.List(ctx)
}

// ListByStudent retrieves one student's payments.
func (s *PaymentService) ListByStudent(ctx context.Context, studentID int) ([]model.Payment, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// ListByStatus retrieves payments with the given status.
func (s *PaymentService) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: payment status %q", ErrInvalidState, status)
	}
	return s.repo.ListByStatus(ctx, status)
}

// ListPendingByStudent retrieves one student's PENDING payments.
func (s *PaymentService) ListPendingByStudent(ctx context.Context, studentID int) ([]model.Payment, error) {
	return s.repo.ListPendingByStudent(ctx, studentID)
}

// ListRecent retrieves payments from the last 30 days.
func (s *PaymentService) ListRecent(ctx context.Context) ([]model.Payment, error) {
	return s.repo.ListSince(ctx, time.Now().Add(-recentPaymentsWindow))
}

// GetByID retrieves a payment by ID.
func (s *PaymentService) GetByID(ctx context.Context, id int) (*model.Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return payment, nil
}

// Create records a new payment. The amount must be positive; the payment
// date is fixed to now and never changes.
func (s *PaymentService) Create(ctx context.Context, req *model.CreatePaymentRequest) (*model.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidState)
	}
	payment := model.NewPayment(req.StudentID, req.Amount, req.Method, req.Status, time.Now())
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Update corrects a payment's amount or method, or moves it to a new
// status. The payment date and the owning student never change.
func (s *PaymentService) Update(ctx context.Context, id int, req *model.UpdatePaymentRequest) (*model.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidState)
	}
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	payment.Amount = req.Amount
	payment.Method = req.Method
	payment.Status = req.Status
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Delete removes a payment.
func (s *PaymentService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return s.repo.Delete(ctx, id)
}

// TotalRevenue totals COMPLETED payments; 0 when there are none.
func (s *PaymentService) TotalRevenue(ctx context.Context) (float64, error) {
	return s.repo.SumByStatus(ctx, model.PaymentCompleted)
}

// TotalPending totals PENDING payments; 0 when there are none.
func (s *PaymentService) TotalPending(ctx context.Context) (float64, error) {
	return s.repo.SumByStatus(ctx, model.PaymentPending)
}

// TotalPaidByStudent totals one student's COMPLETED payments; 0 when none.
func (s *PaymentService) TotalPaidByStudent(ctx context.Context, studentID int) (float64, error) {
	return s.repo.SumCompletedByStudent(ctx, studentID)
}
