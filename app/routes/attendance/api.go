package attendance

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/validation"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

type markRequest struct {
	ClassID          string   `json:"class_id" validate:"required,uuid"`
	Date             string   `json:"date" validate:"required"`
	AbsentStudentIDs []string `json:"absent_student_ids" validate:"dive,uuid"`
}

// MarkAttendanceAPI replaces the class's absentee set for a working day.
// Only absences are stored; every unlisted student is implicitly present.
func MarkAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	user := auth.CurrentUser(c)
	if !user.CanAccessAllClasses() && !user.OwnsClass(req.ClassID) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}

	working, err := database.IsWorkingDay(db, date)
	if err != nil {
		config.LogError("attendance", "MarkAttendanceAPI", "working day lookup", req.Date, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check working day")
	}
	if !working {
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			"Attendance can only be marked on a working day")
	}

	// Duplicate IDs in the request collapse to one absence.
	seen := make(map[string]bool, len(req.AbsentStudentIDs))
	absentIDs := make([]string, 0, len(req.AbsentStudentIDs))
	for _, id := range req.AbsentStudentIDs {
		if !seen[id] {
			seen[id] = true
			absentIDs = append(absentIDs, id)
		}
	}

	submission, err := database.ReplaceAbsentees(db, req.ClassID, date, absentIDs, user.ID)
	if err != nil {
		config.LogError("attendance", "MarkAttendanceAPI", "replace absentees", req.ClassID, err)
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"submission": submission,
		"message":    "Attendance submitted successfully",
	})
}

func GetClassAttendanceAPI(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("classId")
	date, err := parseDate(c.Params("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	absentees, err := database.GetAbsenteesByClassAndDate(db, classID, date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance records")
	}

	response := fiber.Map{
		"success":   true,
		"class_id":  classID,
		"date":      c.Params("date"),
		"absentees": absentees,
		"count":     len(absentees),
		"submitted": false,
	}
	if submission, err := database.GetSubmission(db, classID, date); err == nil {
		response["submitted"] = true
		response["submission"] = submission
	}
	return c.JSON(response)
}

// GetAbsenteesByDateAPI lists absentees across the institution for one date.
// Deans are scoped to their own department.
func GetAbsenteesByDateAPI(c *fiber.Ctx, db *sql.DB) error {
	date, err := parseDate(c.Params("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	departmentID := c.Query("department_id")
	user := auth.CurrentUser(c)
	if user.HasRole(models.RoleDean) && !user.HasRole(models.RoleAdmin) && user.DepartmentID != nil {
		departmentID = *user.DepartmentID
	}

	absentees, err := database.GetAbsenteesByDate(db, date, departmentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch absentees")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"date":      c.Params("date"),
		"absentees": absentees,
		"count":     len(absentees),
	})
}

// summaryRange parses ?from and ?to, defaulting to the current month.
func summaryRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	var err error
	if s := c.Query("from"); s != "" {
		if from, err = parseDate(s); err != nil {
			return from, to, err
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = parseDate(s); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}

func GetStudentSummaryAPI(c *fiber.Ctx, db *sql.DB) error {
	from, to, err := summaryRange(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	summary, err := database.GetStudentAttendanceSummary(db, c.Params("studentId"), from, to)
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch attendance summary")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"from":    from.Format(dateLayout),
		"to":      to.Format(dateLayout),
		"data":    summary,
	})
}

func GetClassSummaryAPI(c *fiber.Ctx, db *sql.DB) error {
	from, to, err := summaryRange(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	summaries, err := database.GetClassAttendanceSummary(db, c.Params("classId"), from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class summary")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"from":    from.Format(dateLayout),
		"to":      to.Format(dateLayout),
		"data":    summaries,
		"count":   len(summaries),
	})
}
