package models

import "time"

// Class is a teaching group inside a department (e.g. "CSE II Year A").
type Class struct {
	ID           string     `json:"id"`
	Name         string     `json:"name" validate:"required"`
	DepartmentID string     `json:"department_id" validate:"required,uuid"`
	Year         int        `json:"year,omitempty"`
	Section      string     `json:"section,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`

	DepartmentName string `json:"department_name,omitempty"`
	StudentCount   int    `json:"student_count,omitempty"`
}
