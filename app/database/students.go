package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
)

// StudentFilters represents filtering options for students
type StudentFilters struct {
	Search       string
	ClassID      string
	DepartmentID string
	Gender       string
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}

const studentSelect = `
	SELECT s.id, s.register_no, s.first_name, s.last_name, s.class_id, s.gender,
		   s.phone, s.is_active, s.created_at, s.updated_at,
		   c.name AS class_name, c.department_id, d.name AS department_name
	FROM students s
	JOIN classes c ON s.class_id = c.id
	JOIN departments d ON c.department_id = d.id
	WHERE s.is_active = true AND s.deleted_at IS NULL`

func scanStudent(rows *sql.Rows) (*models.Student, error) {
	s := &models.Student{}
	var gender, phone sql.NullString
	err := rows.Scan(
		&s.ID, &s.RegisterNo, &s.FirstName, &s.LastName, &s.ClassID, &gender,
		&phone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&s.ClassName, &s.DepartmentID, &s.DepartmentName,
	)
	if err != nil {
		return nil, err
	}
	s.Gender = models.Gender(gender.String)
	s.Phone = phone.String
	return s, nil
}

// GetStudentsWithFilters returns students matching the filters plus a total count.
func GetStudentsWithFilters(db *sql.DB, filters StudentFilters) ([]*models.Student, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", argIndex))
		args = append(args, filters.ClassID)
		argIndex++
	}
	if filters.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("c.department_id = $%d", argIndex))
		args = append(args, filters.DepartmentID)
		argIndex++
	}
	if filters.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("s.gender = $%d", argIndex))
		args = append(args, filters.Gender)
		argIndex++
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(s.register_no) LIKE $%d OR LOWER(s.first_name) LIKE $%d
			  OR LOWER(s.last_name) LIKE $%d OR LOWER(s.first_name || ' ' || s.last_name) LIKE $%d)`,
			argIndex, argIndex+1, argIndex+2, argIndex+3))
		args = append(args, pattern, pattern, pattern, pattern)
		argIndex += 4
	}

	where := ""
	if len(conditions) > 0 {
		where = " AND " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM students s
				   JOIN classes c ON s.class_id = c.id
				   JOIN departments d ON c.department_id = d.id
				   WHERE s.is_active = true AND s.deleted_at IS NULL` + where
	var totalCount int
	if err := db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := studentSelect + where

	sortBy := "s.register_no"
	switch filters.SortBy {
	case "name":
		sortBy = "s.first_name"
	case "class":
		sortBy = "c.name"
	}
	order := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		order = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, order)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			continue
		}
		students = append(students, s)
	}
	return students, totalCount, nil
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	query := studentSelect + ` AND s.id = $1`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	return scanStudent(rows)
}

func GetStudentsByClass(db *sql.DB, classID string) ([]*models.Student, error) {
	students, _, err := GetStudentsWithFilters(db, StudentFilters{ClassID: classID})
	return students, err
}

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (register_no, first_name, last_name, class_id, gender, phone)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, student.RegisterNo, student.FirstName, student.LastName,
		student.ClassID, string(student.Gender), student.Phone).Scan(
		&student.ID, &student.IsActive, &student.CreatedAt, &student.UpdatedAt)
}

func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `UPDATE students SET register_no = $1, first_name = $2, last_name = $3,
			  class_id = $4, gender = NULLIF($5, ''), phone = NULLIF($6, ''), updated_at = NOW()
			  WHERE id = $7 AND is_active = true`
	result, err := db.Exec(query, student.RegisterNo, student.FirstName, student.LastName,
		student.ClassID, string(student.Gender), student.Phone, student.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeactivateStudent soft-deletes a roster entry; ledger rows are kept.
func DeactivateStudent(db *sql.DB, studentID string) error {
	result, err := db.Exec(`UPDATE students SET is_active = false, deleted_at = NOW() WHERE id = $1`, studentID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil || rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
