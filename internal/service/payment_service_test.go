package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smitedu/institute-backend/internal/model"
)

// fakePaymentStore is an in-memory paymentStore for unit tests.
type fakePaymentStore struct {
	nextID  int
	records map[int]*model.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{nextID: 1, records: make(map[int]*model.Payment)}
}

func (f *fakePaymentStore) List(_ context.Context) ([]model.Payment, error) {
	out := make([]model.Payment, 0, len(f.records))
	for _, p := range f.records {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePaymentStore) ListByStudent(_ context.Context, studentID int) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.records {
		if p.StudentID == studentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) ListByStatus(_ context.Context, status model.PaymentStatus) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.records {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) ListPendingByStudent(_ context.Context, studentID int) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.records {
		if p.StudentID == studentID && p.Status == model.PaymentPending {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) ListSince(_ context.Context, since time.Time) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.records {
		if !p.PaymentDate.Before(since) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) GetByID(_ context.Context, id int) (*model.Payment, error) {
	p, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentStore) Create(_ context.Context, p *model.Payment) error {
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.records[p.ID] = &cp
	return nil
}

func (f *fakePaymentStore) Update(_ context.Context, p *model.Payment) error {
	stored, ok := f.records[p.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Amount = p.Amount
	stored.Method = p.Method
	stored.Status = p.Status
	return nil
}

func (f *fakePaymentStore) Delete(_ context.Context, id int) error {
	delete(f.records, id)
	return nil
}

func (f *fakePaymentStore) SumByStatus(_ context.Context, status model.PaymentStatus) (float64, error) {
	total := 0.0
	for _, p := range f.records {
		if p.Status == status {
			total += p.Amount
		}
	}
	return total, nil
}

func (f *fakePaymentStore) SumCompletedByStudent(_ context.Context, studentID int) (float64, error) {
	total := 0.0
	for _, p := range f.records {
		if p.StudentID == studentID && p.Status == model.PaymentCompleted {
			total += p.Amount
		}
	}
	return total, nil
}

func (f *fakePaymentStore) CountByStatus(_ context.Context, status model.PaymentStatus) (int, error) {
	n := 0
	for _, p := range f.records {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func TestPaymentCreateDefaultsToPending(t *testing.T) {
	svc := NewPaymentService(newFakePaymentStore())

	payment, err := svc.Create(context.Background(), &model.CreatePaymentRequest{
		StudentID: 1,
		Amount:    1500,
		Method:    model.PaymentUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, payment.Status)
	assert.False(t, payment.PaymentDate.IsZero())
}

func TestPaymentCreateKeepsExplicitStatus(t *testing.T) {
	svc := NewPaymentService(newFakePaymentStore())

	payment, err := svc.Create(context.Background(), &model.CreatePaymentRequest{
		StudentID: 1,
		Amount:    1500,
		Method:    model.PaymentCash,
		Status:    model.PaymentCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, payment.Status)
}

func TestPaymentCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService(newFakePaymentStore())
	ctx := context.Background()

	for _, amount := range []float64{0, -1, -250.50} {
		_, err := svc.Create(ctx, &model.CreatePaymentRequest{
			StudentID: 1,
			Amount:    amount,
			Method:    model.PaymentCash,
		})
		assert.ErrorIs(t, err, ErrInvalidState, "amount %v", amount)
	}
}

func TestPaymentUpdateRejectsNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService(newFakePaymentStore())
	ctx := context.Background()

	payment, err := svc.Create(ctx, &model.CreatePaymentRequest{
		StudentID: 1, Amount: 100, Method: model.PaymentCash,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, payment.ID, &model.UpdatePaymentRequest{
		Amount: -5, Method: model.PaymentCash, Status: model.PaymentCompleted,
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPaymentTotals(t *testing.T) {
	svc := NewPaymentService(newFakePaymentStore())
	ctx := context.Background()

	seed := []struct {
		studentID int
		amount    float64
		status    model.PaymentStatus
	}{
		{1, 1000, model.PaymentCompleted},
		{1, 500, model.PaymentCompleted},
		{1, 250, model.PaymentPending},
		{2, 700, model.PaymentCompleted},
		{2, 300, model.PaymentFailed},
	}
	for _, s := range seed {
		_, err := svc.Create(ctx, &model.CreatePaymentRequest{
			StudentID: s.studentID, Amount: s.amount, Method: model.PaymentCash, Status: s.status,
		})
		require.NoError(t, err)
	}

	revenue, err := svc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2200.0, revenue, 0.0001)

	pending, err := svc.TotalPending(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 250.0, pending, 0.0001)

	paid, err := svc.TotalPaidByStudent(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, paid, 0.0001)
}

func TestPaymentTotalsEmptyAreZero(t *testing.T) {
	svc := NewPaymentService(newFakePaymentStore())
	ctx := context.Background()

	revenue, err := svc.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, revenue)

	paid, err := svc.TotalPaidByStudent(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0.0, paid)
}

func TestPaymentListByStatusRejectsUnknown(t *testing.T) {
	svc := NewPaymentService(newFakePaymentStore())

	_, err := svc.ListByStatus(context.Background(), "CHARGEBACK")
	assert.ErrorIs(t, err, ErrInvalidState)
}
