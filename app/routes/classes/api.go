package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/validation"
)

func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	classes, err := database.GetClasses(db, c.Query("department_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"classes": classes,
		"count":   len(classes),
	})
}

func GetClassByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	class, err := database.GetClassByID(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Class not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    class,
	})
}

func CreateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var class models.Class
	if err := c.BodyParser(&class); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&class); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	if err := database.CreateClass(db, &class); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    class,
		"message": "Class created successfully",
	})
}

type assignTeacherRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// AssignTeacherAPI links a teacher to a class for attendance scoping.
func AssignTeacherAPI(c *fiber.Ctx, db *sql.DB) error {
	var req assignTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	if err := database.AssignTeacherToClass(db, req.UserID, c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign teacher")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Teacher assigned successfully",
	})
}
