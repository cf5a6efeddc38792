package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
	"github.com/smitedu/institute-backend/internal/validator"
)

// NotificationHandler handles admin-facing broadcast notification management.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications godoc
// GET /api/v1/admin/notifications?q=keyword&window=recent
// Lists all notifications, searches by keyword, or filters to the last
// 7 days.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var (
		notifications []model.Notification
		err           error
	)
	switch {
	case c.Query("q") != "":
		notifications, err = h.notificationService.Search(c.Request.Context(), c.Query("q"))
	case c.Query("window") == "recent":
		notifications, err = h.notificationService.ListRecent(c.Request.Context())
	default:
		notifications, err = h.notificationService.List(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notifications": notifications})
}

// GetNotification godoc
// GET /api/v1/admin/notifications/:id
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	notification, err := h.notificationService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notification": notification})
}

// CreateNotification godoc
// POST /api/v1/admin/notifications
// Persists the notification and queues it for live fanout to connected
// clients.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req model.CreateNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notification, err := h.notificationService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"notification": notification})
}

// UpdateNotification godoc
// PUT /api/v1/admin/notifications/:id
func (h *NotificationHandler) UpdateNotification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.CreateNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	notification, err := h.notificationService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notification": notification})
}

// DeleteNotification godoc
// DELETE /api/v1/admin/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "notification deleted successfully"})
}
