package model

import "time"

// PaymentMethod enumerates the accepted payment channels.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentNetBanking PaymentMethod = "NET_BANKING"
	PaymentCheque     PaymentMethod = "CHEQUE"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentUPI, PaymentNetBanking, PaymentCheque:
		return true
	}
	return false
}

// PaymentStatus enumerates the lifecycle states of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment records money received from a student.
// PaymentDate is fixed at creation and never updated.
type Payment struct {
	ID          int           `json:"id"`
	StudentID   int           `json:"student_id"`
	Amount      float64       `json:"amount"`
	PaymentDate time.Time     `json:"payment_date"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Joined display field, populated by list queries only.
	StudentName string `json:"student_name,omitempty"`
}

// NewPayment builds a Payment with the status default resolved once:
// an empty status becomes PENDING here, never downstream.
func NewPayment(studentID int, amount float64, method PaymentMethod, status PaymentStatus, now time.Time) *Payment {
	if status == "" {
		status = PaymentPending
	}
	return &Payment{
		StudentID:   studentID,
		Amount:      amount,
		PaymentDate: now,
		Method:      method,
		Status:      status,
	}
}

// CreatePaymentRequest is the payload for recording a payment.
// Status is optional and defaults to PENDING.
type CreatePaymentRequest struct {
	StudentID int           `json:"student_id" binding:"required"`
	Amount    float64       `json:"amount" binding:"required,gt=0"`
	Method    PaymentMethod `json:"method" binding:"required,oneof=CASH CREDIT_CARD DEBIT_CARD UPI NET_BANKING CHEQUE"`
	Status    PaymentStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED REFUNDED"`
}

// UpdatePaymentRequest is the payload for changing a payment's status or
// correcting its amount/method. The payment date is never touched.
type UpdatePaymentRequest struct {
	Amount float64       `json:"amount" binding:"required,gt=0"`
	Method PaymentMethod `json:"method" binding:"required,oneof=CASH CREDIT_CARD DEBIT_CARD UPI NET_BANKING CHEQUE"`
	Status PaymentStatus `json:"status" binding:"required,oneof=PENDING COMPLETED FAILED REFUNDED"`
}
