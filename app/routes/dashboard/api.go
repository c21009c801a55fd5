package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
)

// GetDashboardStatsAPI returns the landing-page rollup. Deans see their own
// department; everyone else sees the whole institution.
func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	departmentID := ""
	user := auth.CurrentUser(c)
	if user.HasRole(models.RoleDean) && !user.HasRole(models.RoleAdmin) && user.DepartmentID != nil {
		departmentID = *user.DepartmentID
	}

	stats, err := database.GetDashboardStats(db, departmentID)
	if err != nil {
		config.LogError("dashboard", "GetDashboardStatsAPI", "load stats", departmentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard statistics")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
