package fees

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/ledger"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/validation"
)

// ledgerError maps the ledger error taxonomy onto HTTP statuses. A failed
// mutation has already been rolled back; callers only see committed state.
func ledgerError(c *fiber.Ctx, err error) error {
	var valErr *ledger.ValidationError
	var overErr *ledger.OverpaymentError
	var totalErr *ledger.InvalidTotalError
	var persErr *ledger.PersistenceError

	switch {
	case errors.Is(err, ledger.ErrProfileNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Fee profile not found")
	case errors.As(err, &valErr):
		return fiber.NewError(fiber.StatusUnprocessableEntity, valErr.Error())
	case errors.As(err, &overErr):
		return fiber.NewError(fiber.StatusConflict, overErr.Error())
	case errors.As(err, &totalErr):
		return fiber.NewError(fiber.StatusConflict, totalErr.Error())
	case errors.As(err, &persErr):
		config.LogError("fees", "ledgerError", persErr.Op, nil, persErr.Err)
		return fiber.NewError(fiber.StatusInternalServerError, "Fee operation failed; no changes were applied")
	}
	config.LogError("fees", "ledgerError", "unexpected", nil, err)
	return fiber.NewError(fiber.StatusInternalServerError, "Fee operation failed")
}

// feeFiltersFromQuery builds filters, constraining deans to their department.
func feeFiltersFromQuery(c *fiber.Ctx) database.FeeFilters {
	filters := database.FeeFilters{
		ClassID:      c.Query("class_id"),
		DepartmentID: c.Query("department_id"),
		Status:       c.Query("status"),
		Search:       c.Query("search"),
		Limit:        c.QueryInt("limit", 0),
		Offset:       c.QueryInt("offset", 0),
	}
	user := auth.CurrentUser(c)
	if user.HasRole(models.RoleDean) && !user.HasRole(models.RoleAdmin) && user.DepartmentID != nil {
		filters.DepartmentID = *user.DepartmentID
	}
	return filters
}

func GetFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	profiles, totalCount, err := database.ListFeeProfiles(db, feeFiltersFromQuery(c))
	if err != nil {
		config.LogError("fees", "GetFeesAPI", "list profiles", nil, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee profiles")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"data":        profiles,
		"count":       len(profiles),
		"total_count": totalCount,
	})
}

func GetFeeByStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	profile, err := database.GetFeeProfile(db, c.Params("studentId"))
	if err != nil {
		return ledgerError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}

// EditFeeTotalsAPI sets per-category totals for a student. Creates the
// profile on first edit; never touches paid amounts.
func EditFeeTotalsAPI(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Totals map[ledger.Category]decimal.Decimal `json:"totals" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}

	user := auth.CurrentUser(c)
	profile, err := database.SaveFeeTotals(db, c.Params("studentId"), req.Totals, user.ID)
	if err != nil {
		return ledgerError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
		"message": "Fee totals updated successfully",
	})
}

type paymentRequest struct {
	FeeType string          `json:"fee_type" validate:"required,oneof=tuition exam transport hostel registration"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
}

// RecordPaymentAPI applies a payment to one category and logs exactly one
// transaction, atomically.
func RecordPaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  validation.FormatErrors(err),
		})
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Payment amount must be greater than zero")
	}

	user := auth.CurrentUser(c)
	profile, trans, err := database.RecordPayment(db, c.Params("studentId"),
		ledger.Category(req.FeeType), req.Amount, user.ID)
	if err != nil {
		return ledgerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"data":        profile,
		"transaction": trans,
		"message":     "Payment recorded successfully",
	})
}

func GetTransactionsAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("studentId")

	// A missing profile is a 404, not an empty log.
	if _, err := database.GetFeeProfile(db, studentID); err != nil {
		return ledgerError(c, err)
	}

	transactions, err := database.GetFeeTransactions(db, studentID)
	if err != nil {
		config.LogError("fees", "GetTransactionsAPI", "load transactions", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transactions")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    transactions,
		"count":   len(transactions),
	})
}

func GetFeeSummaryAPI(c *fiber.Ctx, db *sql.DB) error {
	profiles, _, err := database.ListFeeProfiles(db, feeFiltersFromQuery(c))
	if err != nil {
		config.LogError("fees", "GetFeeSummaryAPI", "list profiles", nil, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee summary")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    ledger.Summarize(profiles),
	})
}
