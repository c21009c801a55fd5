package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
)

func SetupClassesRoutes(app *fiber.App) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetClassesAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetClassByIDAPI(c, config.GetDB())
	})

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateClassAPI(c, config.GetDB())
	})
	api.Post("/:id/teachers", admin, func(c *fiber.Ctx) error {
		return AssignTeacherAPI(c, config.GetDB())
	})
}
