package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
)

// UpsertWorkingDay marks a date working or reverts it to holiday.
func UpsertWorkingDay(db *sql.DB, day *models.WorkingDay) error {
	query := `INSERT INTO working_days (date, is_working, label, marked_by, updated_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  ON CONFLICT (date) DO UPDATE
			  SET is_working = EXCLUDED.is_working, label = EXCLUDED.label,
				  marked_by = EXCLUDED.marked_by, updated_at = NOW()
			  RETURNING updated_at`
	return db.QueryRow(query, day.Date, day.IsWorking, day.Label, day.MarkedBy).Scan(&day.UpdatedAt)
}

// IsWorkingDay reports whether the date has been explicitly opted in.
// Dates with no row are holidays.
func IsWorkingDay(db *sql.DB, date time.Time) (bool, error) {
	var working bool
	err := db.QueryRow(`SELECT is_working FROM working_days WHERE date = $1`, date).Scan(&working)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return working, nil
}

func GetWorkingDays(db *sql.DB, from, to time.Time) ([]*models.WorkingDay, error) {
	query := `SELECT date, is_working, label, COALESCE(marked_by::text, ''), updated_at
			  FROM working_days WHERE date BETWEEN $1 AND $2 ORDER BY date`
	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*models.WorkingDay
	for rows.Next() {
		d := &models.WorkingDay{}
		if err := rows.Scan(&d.Date, &d.IsWorking, &d.Label, &d.MarkedBy, &d.UpdatedAt); err != nil {
			continue
		}
		days = append(days, d)
	}
	return days, nil
}

func CountWorkingDays(db *sql.DB, from, to time.Time) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM working_days
						WHERE is_working = true AND date BETWEEN $1 AND $2`, from, to).Scan(&count)
	return count, err
}

// ReplaceAbsentees atomically replaces the class's absentee set for a date and
// upserts the submission row. Re-submission overwrites the previous set.
// Absent IDs must belong to the class; unknown IDs fail the whole batch.
func ReplaceAbsentees(db *sql.DB, classID string, date time.Time, absentStudentIDs []string, markedBy string) (*models.AttendanceSubmission, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var studentCount int
	err = tx.QueryRow(`SELECT COUNT(*) FROM students WHERE class_id = $1 AND is_active = true`,
		classID).Scan(&studentCount)
	if err != nil {
		return nil, err
	}

	if len(absentStudentIDs) > 0 {
		var inClass int
		err = tx.QueryRow(`SELECT COUNT(*) FROM students
						   WHERE class_id = $1 AND is_active = true AND id = ANY($2)`,
			classID, pq.Array(absentStudentIDs)).Scan(&inClass)
		if err != nil {
			return nil, err
		}
		if inClass != len(absentStudentIDs) {
			return nil, fmt.Errorf("%d of %d absent students do not belong to class %s",
				len(absentStudentIDs)-inClass, len(absentStudentIDs), classID)
		}
	}

	if _, err = tx.Exec(`DELETE FROM attendance_records WHERE class_id = $1 AND date = $2`,
		classID, date); err != nil {
		return nil, err
	}

	for _, studentID := range absentStudentIDs {
		_, err = tx.Exec(`INSERT INTO attendance_records (student_id, class_id, date, marked_by)
						  VALUES ($1, $2, $3, $4)
						  ON CONFLICT (student_id, date) DO NOTHING`,
			studentID, classID, date, markedBy)
		if err != nil {
			return nil, err
		}
	}

	submission := &models.AttendanceSubmission{
		ClassID:      classID,
		Date:         date,
		AbsentCount:  len(absentStudentIDs),
		StudentCount: studentCount,
		SubmittedBy:  markedBy,
	}
	err = tx.QueryRow(`INSERT INTO attendance_submissions (class_id, date, absent_count, student_count, submitted_by, submitted_at)
					   VALUES ($1, $2, $3, $4, $5, NOW())
					   ON CONFLICT (class_id, date) DO UPDATE
					   SET absent_count = EXCLUDED.absent_count, student_count = EXCLUDED.student_count,
						   submitted_by = EXCLUDED.submitted_by, submitted_at = NOW()
					   RETURNING id, submitted_at`,
		classID, date, len(absentStudentIDs), studentCount, markedBy).Scan(
		&submission.ID, &submission.SubmittedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return submission, nil
}

const absenteeSelect = `
	SELECT a.id, a.student_id, a.class_id, a.date, COALESCE(a.marked_by::text, ''), a.created_at,
		   s.first_name || CASE WHEN s.last_name = '' THEN '' ELSE ' ' || s.last_name END AS student_name,
		   s.register_no, c.name AS class_name
	FROM attendance_records a
	JOIN students s ON a.student_id = s.id
	JOIN classes c ON a.class_id = c.id`

func scanAbsentees(rows *sql.Rows) []*models.AttendanceRecord {
	var records []*models.AttendanceRecord
	for rows.Next() {
		r := &models.AttendanceRecord{}
		err := rows.Scan(&r.ID, &r.StudentID, &r.ClassID, &r.Date, &r.MarkedBy,
			&r.CreatedAt, &r.StudentName, &r.RegisterNo, &r.ClassName)
		if err != nil {
			continue
		}
		records = append(records, r)
	}
	return records
}

func GetAbsenteesByClassAndDate(db *sql.DB, classID string, date time.Time) ([]*models.AttendanceRecord, error) {
	query := absenteeSelect + ` WHERE a.class_id = $1 AND a.date = $2 ORDER BY s.register_no`
	rows, err := db.Query(query, classID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAbsentees(rows), nil
}

// GetAbsenteesByDate lists every absentee across the institution for a date,
// optionally scoped to one department.
func GetAbsenteesByDate(db *sql.DB, date time.Time, departmentID string) ([]*models.AttendanceRecord, error) {
	query := absenteeSelect + ` WHERE a.date = $1`
	args := []interface{}{date}
	if departmentID != "" {
		query += ` AND c.department_id = $2`
		args = append(args, departmentID)
	}
	query += ` ORDER BY c.name, s.register_no`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAbsentees(rows), nil
}

func GetSubmission(db *sql.DB, classID string, date time.Time) (*models.AttendanceSubmission, error) {
	sub := &models.AttendanceSubmission{}
	query := `SELECT sub.id, sub.class_id, sub.date, sub.absent_count, sub.student_count,
			  COALESCE(sub.submitted_by::text, ''), sub.submitted_at, c.name,
			  COALESCE(u.first_name || ' ' || u.last_name, '')
			  FROM attendance_submissions sub
			  JOIN classes c ON sub.class_id = c.id
			  LEFT JOIN users u ON sub.submitted_by = u.id
			  WHERE sub.class_id = $1 AND sub.date = $2`
	err := db.QueryRow(query, classID, date).Scan(
		&sub.ID, &sub.ClassID, &sub.Date, &sub.AbsentCount, &sub.StudentCount,
		&sub.SubmittedBy, &sub.SubmittedAt, &sub.ClassName, &sub.SubmittedByName)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// GetStudentAttendanceSummary computes the absence rollup over a range.
// The denominator is the explicit working-day calendar, never the raw
// calendar span.
func GetStudentAttendanceSummary(db *sql.DB, studentID string, from, to time.Time) (*models.StudentAttendanceSummary, error) {
	workingDays, err := CountWorkingDays(db, from, to)
	if err != nil {
		return nil, err
	}

	summary := &models.StudentAttendanceSummary{StudentID: studentID, WorkingDays: workingDays}

	query := `SELECT s.first_name || CASE WHEN s.last_name = '' THEN '' ELSE ' ' || s.last_name END,
			  s.register_no,
			  (SELECT COUNT(*) FROM attendance_records a
			   JOIN working_days w ON a.date = w.date AND w.is_working = true
			   WHERE a.student_id = s.id AND a.date BETWEEN $2 AND $3)
			  FROM students s WHERE s.id = $1`
	err = db.QueryRow(query, studentID, from, to).Scan(
		&summary.StudentName, &summary.RegisterNo, &summary.AbsentDays)
	if err != nil {
		return nil, err
	}

	summary.PresentDays = summary.WorkingDays - summary.AbsentDays
	if summary.WorkingDays > 0 {
		summary.Percentage = float64(summary.PresentDays) / float64(summary.WorkingDays) * 100
	}
	return summary, nil
}

// GetClassAttendanceSummary is the per-student rollup for a whole class.
func GetClassAttendanceSummary(db *sql.DB, classID string, from, to time.Time) ([]*models.StudentAttendanceSummary, error) {
	workingDays, err := CountWorkingDays(db, from, to)
	if err != nil {
		return nil, err
	}

	query := `SELECT s.id,
			  s.first_name || CASE WHEN s.last_name = '' THEN '' ELSE ' ' || s.last_name END,
			  s.register_no,
			  (SELECT COUNT(*) FROM attendance_records a
			   JOIN working_days w ON a.date = w.date AND w.is_working = true
			   WHERE a.student_id = s.id AND a.date BETWEEN $2 AND $3)
			  FROM students s
			  WHERE s.class_id = $1 AND s.is_active = true
			  ORDER BY s.register_no`
	rows, err := db.Query(query, classID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.StudentAttendanceSummary
	for rows.Next() {
		sm := &models.StudentAttendanceSummary{WorkingDays: workingDays}
		if err := rows.Scan(&sm.StudentID, &sm.StudentName, &sm.RegisterNo, &sm.AbsentDays); err != nil {
			continue
		}
		sm.PresentDays = sm.WorkingDays - sm.AbsentDays
		if sm.WorkingDays > 0 {
			sm.Percentage = float64(sm.PresentDays) / float64(sm.WorkingDays) * 100
		}
		summaries = append(summaries, sm)
	}
	return summaries, nil
}
