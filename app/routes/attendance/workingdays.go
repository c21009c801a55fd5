package attendance

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
)

type workingDayRequest struct {
	IsWorking bool   `json:"is_working"`
	Label     string `json:"label"`
}

// UpsertWorkingDayAPI opts a date into (or back out of) the working calendar.
func UpsertWorkingDayAPI(c *fiber.Ctx, db *sql.DB) error {
	date, err := parseDate(c.Params("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	var req workingDayRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	day := &models.WorkingDay{
		Date:      date,
		IsWorking: req.IsWorking,
		Label:     req.Label,
		MarkedBy:  auth.CurrentUser(c).ID,
	}
	if err := database.UpsertWorkingDay(db, day); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save working day")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    day,
	})
}

// GetWorkingDaysAPI lists calendar entries for a range (defaults to the
// current month). Dates absent from the result are holidays.
func GetWorkingDaysAPI(c *fiber.Ctx, db *sql.DB) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	var err error
	if s := c.Query("from"); s != "" {
		if from, err = parseDate(s); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid from date")
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = parseDate(s); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid to date")
		}
	}

	days, err := database.GetWorkingDays(db, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch working days")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"from":    from.Format(dateLayout),
		"to":      to.Format(dateLayout),
		"data":    days,
		"count":   len(days),
	})
}
