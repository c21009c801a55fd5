package attendance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
)

// SetupAttendanceRoutes sets up the attendance and working-day routes
func SetupAttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	// Marking is allowed for teachers (own classes), deans and admins.
	mark := auth.RoleMiddleware(models.RoleAdmin, models.RoleDean, models.RoleTeacher)
	api.Post("/mark", mark, func(c *fiber.Ctx) error {
		return MarkAttendanceAPI(c, config.GetDB())
	})

	api.Get("/absentees/:date", func(c *fiber.Ctx) error {
		return GetAbsenteesByDateAPI(c, config.GetDB())
	})
	api.Get("/class/:classId/summary", func(c *fiber.Ctx) error {
		return GetClassSummaryAPI(c, config.GetDB())
	})
	api.Get("/class/:classId/:date", func(c *fiber.Ctx) error {
		return GetClassAttendanceAPI(c, config.GetDB())
	})
	api.Get("/student/:studentId/summary", func(c *fiber.Ctx) error {
		return GetStudentSummaryAPI(c, config.GetDB())
	})

	// Working-day calendar
	days := app.Group("/api/working-days")
	days.Use(auth.AuthMiddleware)
	days.Get("/", func(c *fiber.Ctx) error {
		return GetWorkingDaysAPI(c, config.GetDB())
	})
	days.Put("/:date", auth.RoleMiddleware(models.RoleAdmin, models.RoleDean), func(c *fiber.Ctx) error {
		return UpsertWorkingDayAPI(c, config.GetDB())
	})
}
