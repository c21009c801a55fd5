package database

import (
	"database/sql"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
)

func GetAllDepartments(db *sql.DB) ([]*models.Department, error) {
	query := `SELECT id, name, code, is_active, created_at, updated_at
			  FROM departments WHERE is_active = true AND deleted_at IS NULL
			  ORDER BY name`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		d := &models.Department{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			continue
		}
		departments = append(departments, d)
	}
	return departments, nil
}

func GetDepartmentByID(db *sql.DB, departmentID string) (*models.Department, error) {
	d := &models.Department{}
	query := `SELECT id, name, code, is_active, created_at, updated_at
			  FROM departments WHERE id = $1 AND is_active = true AND deleted_at IS NULL`
	err := db.QueryRow(query, departmentID).Scan(
		&d.ID, &d.Name, &d.Code, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func CreateDepartment(db *sql.DB, department *models.Department) error {
	query := `INSERT INTO departments (name, code) VALUES ($1, $2)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, department.Name, department.Code).Scan(
		&department.ID, &department.IsActive, &department.CreatedAt, &department.UpdatedAt)
}

func GetClasses(db *sql.DB, departmentID string) ([]*models.Class, error) {
	query := `SELECT c.id, c.name, c.department_id, c.year, c.section, c.is_active,
			  c.created_at, c.updated_at, d.name AS department_name,
			  (SELECT COUNT(*) FROM students s WHERE s.class_id = c.id AND s.is_active = true) AS student_count
			  FROM classes c
			  JOIN departments d ON c.department_id = d.id
			  WHERE c.is_active = true AND c.deleted_at IS NULL`
	var args []interface{}
	if departmentID != "" {
		query += ` AND c.department_id = $1`
		args = append(args, departmentID)
	}
	query += ` ORDER BY d.name, c.year, c.name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		cl := &models.Class{}
		err := rows.Scan(&cl.ID, &cl.Name, &cl.DepartmentID, &cl.Year, &cl.Section,
			&cl.IsActive, &cl.CreatedAt, &cl.UpdatedAt, &cl.DepartmentName, &cl.StudentCount)
		if err != nil {
			continue
		}
		classes = append(classes, cl)
	}
	return classes, nil
}

func GetClassByID(db *sql.DB, classID string) (*models.Class, error) {
	cl := &models.Class{}
	query := `SELECT c.id, c.name, c.department_id, c.year, c.section, c.is_active,
			  c.created_at, c.updated_at, d.name AS department_name
			  FROM classes c
			  JOIN departments d ON c.department_id = d.id
			  WHERE c.id = $1 AND c.is_active = true AND c.deleted_at IS NULL`
	err := db.QueryRow(query, classID).Scan(&cl.ID, &cl.Name, &cl.DepartmentID,
		&cl.Year, &cl.Section, &cl.IsActive, &cl.CreatedAt, &cl.UpdatedAt, &cl.DepartmentName)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func CreateClass(db *sql.DB, class *models.Class) error {
	query := `INSERT INTO classes (name, department_id, year, section)
			  VALUES ($1, $2, $3, $4) RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, class.Name, class.DepartmentID, class.Year, class.Section).Scan(
		&class.ID, &class.IsActive, &class.CreatedAt, &class.UpdatedAt)
}

// AssignTeacherToClass links a teacher to a class for attendance scoping.
func AssignTeacherToClass(db *sql.DB, userID, classID string) error {
	_, err := db.Exec(`INSERT INTO teacher_classes (user_id, class_id) VALUES ($1, $2)
					   ON CONFLICT DO NOTHING`, userID, classID)
	return err
}
