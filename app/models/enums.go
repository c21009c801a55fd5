package models

// RoleName defines the staff roles recognised by the application.
type RoleName string

const (
	RoleAdmin   RoleName = "admin"
	RoleDean    RoleName = "dean"
	RoleTeacher RoleName = "teacher"
	RoleViewer  RoleName = "viewer"
)

// AllRoles lists every role the migrations seed.
func AllRoles() []RoleName {
	return []RoleName{RoleAdmin, RoleDean, RoleTeacher, RoleViewer}
}

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)
