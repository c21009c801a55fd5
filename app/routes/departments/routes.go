package departments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
)

func SetupDepartmentsRoutes(app *fiber.App) {
	api := app.Group("/api/departments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetDepartmentsAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetDepartmentByIDAPI(c, config.GetDB())
	})
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin), func(c *fiber.Ctx) error {
		return CreateDepartmentAPI(c, config.GetDB())
	})
}
