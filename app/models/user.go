package models

import "time"

// User is a staff member (admin, dean, teacher or viewer).
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"-" validate:"required,min=8"`
	FirstName    string     `json:"first_name" validate:"required"`
	LastName     string     `json:"last_name" validate:"required"`
	Phone        string     `json:"phone,omitempty"`
	DepartmentID *string    `json:"department_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	Roles        []*Role    `json:"roles,omitempty"`
	ClassIDs     []string   `json:"class_ids,omitempty"`
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if RoleName(r.Name) == name {
			return true
		}
	}
	return false
}

// CanAccessAllClasses is true for roles that see every class and department.
func (u *User) CanAccessAllClasses() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleDean) || u.HasRole(RoleViewer)
}

// CanManageFees is true for roles allowed to edit fee totals and record payments.
func (u *User) CanManageFees() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleDean)
}

// OwnsClass reports whether a teacher is assigned to the class.
func (u *User) OwnsClass(classID string) bool {
	for _, id := range u.ClassIDs {
		if id == classID {
			return true
		}
	}
	return false
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
