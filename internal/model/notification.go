package model

import "time"

// Notification is a broadcast announcement visible to all users.
// No per-user read state is tracked.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNotificationRequest is the payload for publishing a notification.
type CreateNotificationRequest struct {
	Title   string `json:"title" binding:"required,min=2,max=200"`
	Message string `json:"message" binding:"required,min=2,max=5000"`
}
