package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/validation"
)

func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.StudentFilters{
		Search:       c.Query("search"),
		ClassID:      c.Query("class_id"),
		DepartmentID: c.Query("department_id"),
		Gender:       c.Query("gender"),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
		Limit:        c.QueryInt("limit", 0),
		Offset:       c.QueryInt("offset", 0),
	}

	students, totalCount, err := database.GetStudentsWithFilters(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"students":    students,
		"count":       len(students),
		"total_count": totalCount,
	})
}

func GetStudentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&student); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	if err := database.CreateStudent(db, &student); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    student,
		"message": "Student created successfully",
	})
}

func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	student.ID = c.Params("id")
	if err := validation.Struct(&student); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	err := database.UpdateStudent(db, &student)
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student updated successfully",
	})
}

// DeleteStudentAPI deactivates the roster entry. The fee ledger and the
// attendance log survive the removal.
func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	err := database.DeactivateStudent(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student deleted successfully",
	})
}
