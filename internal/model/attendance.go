package model

import "time"

// AttendanceStatus enumerates the per-day presence states.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// Attendance is a per-day presence record scoped to a single enrollment.
// At most one record exists per (enrollment, date).
type Attendance struct {
	ID           int              `json:"id"`
	EnrollmentID int              `json:"enrollment_id"`
	Date         time.Time        `json:"date"`
	Status       AttendanceStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// AttendanceSummary carries the derived attendance metrics for one enrollment.
type AttendanceSummary struct {
	EnrollmentID int     `json:"enrollment_id"`
	TotalDays    int     `json:"total_days"`
	PresentDays  int     `json:"present_days"`
	AbsentDays   int     `json:"absent_days"`
	Percentage   float64 `json:"percentage"`
}

// MarkAttendanceRequest is the payload for marking attendance.
type MarkAttendanceRequest struct {
	EnrollmentID int              `json:"enrollment_id" binding:"required"`
	Date         string           `json:"date" binding:"required,datetime=2006-01-02"`
	Status       AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
}

// UpdateAttendanceRequest is the payload for correcting an existing record.
type UpdateAttendanceRequest struct {
	Status AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
}
