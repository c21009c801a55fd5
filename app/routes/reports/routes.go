package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
)

// SetupReportRoutes sets up the export routes
func SetupReportRoutes(app *fiber.App) {
	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleAdmin, models.RoleDean, models.RoleViewer))

	api.Get("/fees.xlsx", func(c *fiber.Ctx) error {
		return ExportFeesXLSXAPI(c, config.GetDB())
	})
	api.Get("/fees.csv", func(c *fiber.Ctx) error {
		return ExportFeesCSVAPI(c, config.GetDB())
	})
	api.Get("/absentees.xlsx", func(c *fiber.Ctx) error {
		return ExportAbsenteesXLSXAPI(c, config.GetDB())
	})
	api.Get("/absentees.csv", func(c *fiber.Ctx) error {
		return ExportAbsenteesCSVAPI(c, config.GetDB())
	})
}
