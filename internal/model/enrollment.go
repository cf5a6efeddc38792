package model

import "time"

// EnrollmentStatus enumerates the lifecycle states of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
	EnrollmentSuspended EnrollmentStatus = "SUSPENDED"
)

// Valid reports whether s is a known enrollment status.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentActive, EnrollmentCompleted, EnrollmentDropped, EnrollmentSuspended:
		return true
	}
	return false
}

// Enrollment links a student to a course for a period, carrying a lifecycle
// status. Only one ACTIVE enrollment may exist per (student, course) pair.
// EnrollmentDate is fixed at creation and never updated.
type Enrollment struct {
	ID             int              `json:"id"`
	StudentID      int              `json:"student_id"`
	CourseID       int              `json:"course_id"`
	EnrollmentDate time.Time        `json:"enrollment_date"`
	Status         EnrollmentStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Joined display fields, populated by list queries only.
	StudentName string `json:"student_name,omitempty"`
	CourseName  string `json:"course_name,omitempty"`
}

// NewEnrollment builds an Enrollment with the status default resolved once:
// an empty status becomes ACTIVE here, never downstream.
func NewEnrollment(studentID, courseID int, status EnrollmentStatus, now time.Time) *Enrollment {
	if status == "" {
		status = EnrollmentActive
	}
	return &Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: now,
		Status:         status,
	}
}

// CreateEnrollmentRequest is the payload for enrolling a student.
// Status is optional and defaults to ACTIVE.
type CreateEnrollmentRequest struct {
	StudentID int              `json:"student_id" binding:"required"`
	CourseID  int              `json:"course_id" binding:"required"`
	Status    EnrollmentStatus `json:"status" binding:"omitempty,oneof=ACTIVE COMPLETED DROPPED SUSPENDED"`
}

// UpdateEnrollmentRequest is the payload for changing an enrollment's status.
type UpdateEnrollmentRequest struct {
	Status EnrollmentStatus `json:"status" binding:"required,oneof=ACTIVE COMPLETED DROPPED SUSPENDED"`
}
