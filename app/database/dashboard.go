package database

import (
	"database/sql"
	"time"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/ledger"
)

// DashboardStats is the landing-page rollup.
type DashboardStats struct {
	TotalStudents    int            `json:"total_students"`
	TotalClasses     int            `json:"total_classes"`
	TotalDepartments int            `json:"total_departments"`
	TotalStaff       int            `json:"total_staff"`
	IsWorkingToday   bool           `json:"is_working_today"`
	AbsentToday      int            `json:"absent_today"`
	FeeSummary       ledger.Summary `json:"fee_summary"`
}

// GetDashboardStats returns counts and the fee rollup, optionally scoped to a
// department (dean view).
func GetDashboardStats(db *sql.DB, departmentID string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	studentQuery := `SELECT COUNT(*) FROM students s
					 JOIN classes c ON s.class_id = c.id
					 WHERE s.is_active = true`
	classQuery := `SELECT COUNT(*) FROM classes c WHERE c.is_active = true`
	var args []interface{}
	if departmentID != "" {
		studentQuery += ` AND c.department_id = $1`
		classQuery += ` AND c.department_id = $1`
		args = append(args, departmentID)
	}

	if err := db.QueryRow(studentQuery, args...).Scan(&stats.TotalStudents); err != nil {
		return nil, err
	}
	if err := db.QueryRow(classQuery, args...).Scan(&stats.TotalClasses); err != nil {
		return nil, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM departments WHERE is_active = true`).Scan(&stats.TotalDepartments); err != nil {
		return nil, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE is_active = true`).Scan(&stats.TotalStaff); err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	working, err := IsWorkingDay(db, today)
	if err != nil {
		return nil, err
	}
	stats.IsWorkingToday = working
	if working {
		absentees, err := GetAbsenteesByDate(db, today, departmentID)
		if err != nil {
			return nil, err
		}
		stats.AbsentToday = len(absentees)
	}

	profiles, _, err := ListFeeProfiles(db, FeeFilters{DepartmentID: departmentID})
	if err != nil {
		return nil, err
	}
	stats.FeeSummary = ledger.Summarize(profiles)

	return stats, nil
}
