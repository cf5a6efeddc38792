package model

import "time"

// Student represents a student profile linked 1-1 to a user account.
// EnrollmentDate is fixed at creation and never updated.
type Student struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address,omitempty"`
	DOB            time.Time `json:"dob"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	UserID         int       `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewStudent builds a Student with its enrollment date fixed to now.
func NewStudent(firstName, lastName, email, phone, address string, dob time.Time, userID int, now time.Time) *Student {
	return &Student{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Phone:          phone,
		Address:        address,
		DOB:            dob,
		EnrollmentDate: now,
		UserID:         userID,
	}
}

// CreateStudentRequest is the payload for creating or updating a student.
// Dates travel as YYYY-MM-DD strings and are parsed at the handler.
type CreateStudentRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email,max=150"`
	Phone     string `json:"phone" binding:"required,min=6,max=20"`
	Address   string `json:"address" binding:"omitempty,max=500"`
	DOB       string `json:"dob" binding:"required,datetime=2006-01-02"`
	UserID    int    `json:"user_id" binding:"required"`
}
