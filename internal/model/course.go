package model

import "time"

// Course represents a course offered by the institute.
type Course struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	DurationMonths int       `json:"duration_months"`
	Fee            float64   `json:"fee"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating or updating a course.
type CreateCourseRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=150"`
	Description    string  `json:"description" binding:"omitempty,max=2000"`
	DurationMonths int     `json:"duration_months" binding:"required,min=1,max=120"`
	Fee            float64 `json:"fee" binding:"required,gt=0"`
	StartDate      string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate        string  `json:"end_date" binding:"required,datetime=2006-01-02"`
}
