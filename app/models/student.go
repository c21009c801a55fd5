package models

import "time"

// Student is a roster entry; read-only from the ledger's perspective.
type Student struct {
	ID         string     `json:"id"`
	RegisterNo string     `json:"register_no" validate:"required"`
	FirstName  string     `json:"first_name" validate:"required"`
	LastName   string     `json:"last_name"`
	ClassID    string     `json:"class_id" validate:"required,uuid"`
	Gender     Gender     `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Phone      string     `json:"phone,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`

	ClassName      string `json:"class_name,omitempty"`
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
}

func (s *Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
