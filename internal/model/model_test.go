package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEnrollmentDefaultsStatus(t *testing.T) {
	now := time.Now()

	e := NewEnrollment(1, 2, "", now)
	assert.Equal(t, EnrollmentActive, e.Status)
	assert.Equal(t, now, e.EnrollmentDate)

	e = NewEnrollment(1, 2, EnrollmentSuspended, now)
	assert.Equal(t, EnrollmentSuspended, e.Status)
}

func TestNewPaymentDefaultsStatus(t *testing.T) {
	now := time.Now()

	p := NewPayment(1, 500, PaymentCash, "", now)
	assert.Equal(t, PaymentPending, p.Status)
	assert.Equal(t, now, p.PaymentDate)

	p = NewPayment(1, 500, PaymentCash, PaymentCompleted, now)
	assert.Equal(t, PaymentCompleted, p.Status)
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, EnrollmentActive.Valid())
	assert.True(t, EnrollmentCompleted.Valid())
	assert.False(t, EnrollmentStatus("ARCHIVED").Valid())
	assert.False(t, EnrollmentStatus("active").Valid())

	assert.True(t, AttendancePresent.Valid())
	assert.True(t, AttendanceExcused.Valid())
	assert.False(t, AttendanceStatus("HOLIDAY").Valid())

	assert.True(t, PaymentRefunded.Valid())
	assert.False(t, PaymentStatus("CHARGEBACK").Valid())

	assert.True(t, PaymentUPI.Valid())
	assert.False(t, PaymentMethod("CRYPTO").Valid())
}
