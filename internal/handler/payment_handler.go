package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
	"github.com/smitedu/institute-backend/internal/validator"
)

// PaymentHandler handles admin-facing payment management and the revenue
// summaries.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListPayments godoc
// GET /api/v1/admin/payments?student_id=&status=&window=recent
// Lists payments, optionally filtered by student, status, or the last
// 30 days.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		payments []model.Payment
		err      error
	)
	switch {
	case c.Query("student_id") != "":
		studentID, convErr := strconv.Atoi(c.Query("student_id"))
		if convErr != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		payments, err = h.paymentService.ListByStudent(ctx, studentID)
	case c.Query("status") != "":
		payments, err = h.paymentService.ListByStatus(ctx, model.PaymentStatus(c.Query("status")))
	case c.Query("window") == "recent":
		payments, err = h.paymentService.ListRecent(ctx)
	default:
		payments, err = h.paymentService.List(ctx)
	}
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// GetPayment godoc
// GET /api/v1/admin/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// CreatePayment godoc
// POST /api/v1/admin/payments
// Records a payment. The payment date is fixed to today.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req model.CreatePaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

// UpdatePayment godoc
// PUT /api/v1/admin/payments/:id
// Corrects a payment's amount or method, or moves it to a new status.
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdatePaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payment, err := h.paymentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// DeletePayment godoc
// DELETE /api/v1/admin/payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "payment deleted successfully"})
}

// GetRevenueSummary godoc
// GET /api/v1/admin/payments/summary
// Returns total completed revenue and the outstanding pending amount.
func (h *PaymentHandler) GetRevenueSummary(c *gin.Context) {
	ctx := c.Request.Context()

	revenue, err := h.paymentService.TotalRevenue(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	pending, err := h.paymentService.TotalPending(ctx)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"total_revenue":  revenue,
		"pending_amount": pending,
	})
}
