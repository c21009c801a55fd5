package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
)

// SetupFeesRoutes sets up the fees routes
func SetupFeesRoutes(app *fiber.App) {
	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	// Reads are open to every authenticated role.
	api.Get("/", func(c *fiber.Ctx) error {
		return GetFeesAPI(c, config.GetDB())
	})
	api.Get("/summary", func(c *fiber.Ctx) error {
		return GetFeeSummaryAPI(c, config.GetDB())
	})
	api.Get("/:studentId", func(c *fiber.Ctx) error {
		return GetFeeByStudentAPI(c, config.GetDB())
	})
	api.Get("/:studentId/transactions", func(c *fiber.Ctx) error {
		return GetTransactionsAPI(c, config.GetDB())
	})

	// Mutations are restricted to fee-managing roles.
	manage := auth.RoleMiddleware(models.RoleAdmin, models.RoleDean)
	api.Put("/:studentId", manage, func(c *fiber.Ctx) error {
		return EditFeeTotalsAPI(c, config.GetDB())
	})
	api.Post("/:studentId/payments", manage, func(c *fiber.Ctx) error {
		return RecordPaymentAPI(c, config.GetDB())
	})
}
