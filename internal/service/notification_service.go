package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smitedu/institute-backend/internal/config"
	"github.com/smitedu/institute-backend/internal/model"
)

// recentNotificationsWindow is how far back the recent feed reaches.
const recentNotificationsWindow = 7 * 24 * time.Hour

type notificationStore interface {
	List(ctx context.Context) ([]model.Notification, error)
	ListSince(ctx context.Context, since time.Time) ([]model.Notification, error)
	Search(ctx context.Context, keyword string) ([]model.Notification, error)
	GetByID(ctx context.Context, id int) (*model.Notification, error)
	Create(ctx context.Context, notification *model.Notification) error
	Update(ctx context.Context, notification *model.Notification) error
	Delete(ctx context.Context, id int) error
}

// NotificationService handles broadcast notifications. New notifications
// are queued for the fanout worker, which pushes them to live subscribers.
type NotificationService struct {
	repo notificationStore
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo notificationStore, rdb *redis.Client, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, rdb: rdb, log: log}
}

// List retrieves all notifications.
func (s *NotificationService) List(ctx context.Context) ([]model.Notification, error) {
	return s.repo.List(ctx)
}

// ListRecent retrieves notifications from the last 7 days.
func (s *NotificationService) ListRecent(ctx context.Context) ([]model.Notification, error) {
	return s.repo.ListSince(ctx, time.Now().Add(-recentNotificationsWindow))
}

// Search retrieves notifications matching the keyword.
func (s *NotificationService) Search(ctx context.Context, keyword string) ([]model.Notification, error) {
	return s.repo.Search(ctx, keyword)
}

// GetByID retrieves a notification by ID.
func (s *NotificationService) GetByID(ctx context.Context, id int) (*model.Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return notification, nil
}

// Create persists a notification and enqueues it for live fanout. The
// enqueue is best-effort: a queue failure is logged, not returned, so the
// stored notification is never lost to a Redis hiccup.
func (s *NotificationService) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	notification := &model.Notification{
		Title:   req.Title,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return nil, fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.NotificationFanoutQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).Int("notification_id", notification.ID).
			Msg("Failed to enqueue notification fanout")
	}

	return notification, nil
}

// Update modifies a notification's title and message.
func (s *NotificationService) Update(ctx context.Context, id int, req *model.CreateNotificationRequest) (*model.Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	notification.Title = req.Title
	notification.Message = req.Message
	if err := s.repo.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return s.repo.Delete(ctx, id)
}
