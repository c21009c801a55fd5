package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/attendance"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/classes"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/dashboard"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/departments"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/fees"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/reports"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/students"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/services"
)

// customErrorHandler turns every error into the JSON envelope the API speaks.
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SVCET Attendance Tracker",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Setup students routes
	students.SetupStudentsRoutes(app)

	// Setup classes routes
	classes.SetupClassesRoutes(app)

	// Setup departments routes
	departments.SetupDepartmentsRoutes(app)

	// Setup attendance routes
	attendance.SetupAttendanceRoutes(app)

	// Setup fees routes
	fees.SetupFeesRoutes(app)

	// Setup report export routes
	reports.SetupReportRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	})

	// Start server
	log.Println("Server starting on :" + config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
