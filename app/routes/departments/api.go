package departments

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/validation"
)

func GetDepartmentsAPI(c *fiber.Ctx, db *sql.DB) error {
	departments, err := database.GetAllDepartments(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch departments")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"departments": departments,
		"count":       len(departments),
	})
}

func GetDepartmentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	department, err := database.GetDepartmentByID(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Department not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch department")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    department,
	})
}

func CreateDepartmentAPI(c *fiber.Ctx, db *sql.DB) error {
	var department models.Department
	if err := c.BodyParser(&department); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&department); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	if err := database.CreateDepartment(db, &department); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create department")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    department,
		"message": "Department created successfully",
	})
}
