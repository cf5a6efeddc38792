package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smitedu/institute-backend/internal/model"
)

// NotificationRepository handles broadcast notification data access.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func collectNotifications(rows pgx.Rows) ([]model.Notification, error) {
	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// List retrieves all notifications, newest first.
func (r *NotificationRepository) List(ctx context.Context) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, message, created_at FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotifications(rows)
}

// ListSince retrieves notifications created on or after the cutoff, newest first.
func (r *NotificationRepository) ListSince(ctx context.Context, since time.Time) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, message, created_at FROM notifications
		 WHERE created_at >= $1 ORDER BY created_at DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotifications(rows)
}

// Search retrieves notifications whose title or message contains the keyword.
func (r *NotificationRepository) Search(ctx context.Context, keyword string) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, message, created_at FROM notifications
		 WHERE title ILIKE '%' || $1 || '%' OR message ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC`, keyword)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotifications(rows)
}

// GetByID retrieves a notification by ID.
func (r *NotificationRepository) GetByID(ctx context.Context, id int) (*model.Notification, error) {
	n := &model.Notification{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, message, created_at FROM notifications WHERE id = $1`, id,
	).Scan(&n.ID, &n.Title, &n.Message, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts a new notification. The created timestamp is immutable.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (title, message) VALUES ($1, $2)
		 RETURNING id, created_at`,
		n.Title, n.Message,
	).Scan(&n.ID, &n.CreatedAt)
}

// Update modifies a notification's title and message.
func (r *NotificationRepository) Update(ctx context.Context, n *model.Notification) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET title = $1, message = $2 WHERE id = $3`,
		n.Title, n.Message, n.ID)
	return err
}

// Delete removes a notification by ID.
func (r *NotificationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	return err
}
