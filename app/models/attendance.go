package models

import "time"

// AttendanceRecord exists only for an absent student. Presence is implicit:
// a student with no record on a working day counts as present.
type AttendanceRecord struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id" validate:"required,uuid"`
	ClassID   string    `json:"class_id" validate:"required,uuid"`
	Date      time.Time `json:"date" validate:"required"`
	MarkedBy  string    `json:"marked_by"`
	CreatedAt time.Time `json:"created_at"`

	StudentName string `json:"student_name,omitempty"`
	RegisterNo  string `json:"register_no,omitempty"`
	ClassName   string `json:"class_name,omitempty"`
}

// WorkingDay marks a calendar date as eligible for attendance. Every date
// defaults to holiday until explicitly opted in.
type WorkingDay struct {
	Date      time.Time `json:"date"`
	IsWorking bool      `json:"is_working"`
	Label     string    `json:"label,omitempty"`
	MarkedBy  string    `json:"marked_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttendanceSubmission records that a class's attendance was submitted for a
// date. Re-submission overwrites the previous one (last writer wins).
type AttendanceSubmission struct {
	ID           string    `json:"id"`
	ClassID      string    `json:"class_id"`
	Date         time.Time `json:"date"`
	AbsentCount  int       `json:"absent_count"`
	StudentCount int       `json:"student_count"`
	SubmittedBy  string    `json:"submitted_by"`
	SubmittedAt  time.Time `json:"submitted_at"`

	ClassName       string `json:"class_name,omitempty"`
	SubmittedByName string `json:"submitted_by_name,omitempty"`
}

// StudentAttendanceSummary is the per-student rollup over a date range.
type StudentAttendanceSummary struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	RegisterNo  string  `json:"register_no"`
	WorkingDays int     `json:"working_days"`
	AbsentDays  int     `json:"absent_days"`
	PresentDays int     `json:"present_days"`
	Percentage  float64 `json:"percentage"`
}
