package models

import "time"

// Department groups classes under a dean's scope.
type Department struct {
	ID        string     `json:"id"`
	Name      string     `json:"name" validate:"required"`
	Code      string     `json:"code" validate:"required"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
