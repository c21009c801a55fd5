package reports

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/config"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/database"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/ledger"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/models"
	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/routes/auth"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv"
	dateLayout      = "2006-01-02"
)

func feeFilters(c *fiber.Ctx) database.FeeFilters {
	filters := database.FeeFilters{
		ClassID:      c.Query("class_id"),
		DepartmentID: c.Query("department_id"),
		Status:       c.Query("status"),
	}
	user := auth.CurrentUser(c)
	if user.HasRole(models.RoleDean) && !user.HasRole(models.RoleAdmin) && user.DepartmentID != nil {
		filters.DepartmentID = *user.DepartmentID
	}
	return filters
}

func feeHeader() []string {
	header := []string{"Register No", "Student"}
	for _, cat := range ledger.Categories() {
		header = append(header,
			fmt.Sprintf("%s Total", cat),
			fmt.Sprintf("%s Paid", cat),
			fmt.Sprintf("%s Balance", cat))
	}
	return append(header, "Total Amount", "Total Paid", "Total Balance")
}

func feeRow(p *ledger.Profile) []string {
	row := []string{p.RegisterNo, p.StudentName}
	for _, cat := range ledger.Categories() {
		line := p.Lines[cat]
		row = append(row,
			line.Total.StringFixed(2),
			line.Paid.StringFixed(2),
			line.Balance.StringFixed(2))
	}
	return append(row,
		p.TotalAmount.StringFixed(2),
		p.TotalPaid.StringFixed(2),
		p.TotalBalance.StringFixed(2))
}

// ExportFeesXLSXAPI streams the filtered fee ledger as a workbook.
func ExportFeesXLSXAPI(c *fiber.Ctx, db *sql.DB) error {
	profiles, _, err := database.ListFeeProfiles(db, feeFilters(c))
	if err != nil {
		config.LogError("reports", "ExportFeesXLSXAPI", "list profiles", nil, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee profiles")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Fees"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range feeHeader() {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, p := range profiles {
		for col, value := range feeRow(p) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build workbook")
	}

	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=fees.xlsx`)
	return c.Send(buf.Bytes())
}

// ExportFeesCSVAPI streams the filtered fee ledger as CSV.
func ExportFeesCSVAPI(c *fiber.Ctx, db *sql.DB) error {
	profiles, _, err := database.ListFeeProfiles(db, feeFilters(c))
	if err != nil {
		config.LogError("reports", "ExportFeesCSVAPI", "list profiles", nil, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee profiles")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(feeHeader()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
	}
	for _, p := range profiles {
		if err := w.Write(feeRow(p)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
	}

	c.Set(fiber.HeaderContentType, contentTypeCSV)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=fees.csv`)
	return c.Send(buf.Bytes())
}

func absenteesForExport(c *fiber.Ctx, db *sql.DB) ([]*models.AttendanceRecord, string, error) {
	dateStr := c.Query("date", time.Now().Format(dateLayout))
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	}

	departmentID := c.Query("department_id")
	user := auth.CurrentUser(c)
	if user.HasRole(models.RoleDean) && !user.HasRole(models.RoleAdmin) && user.DepartmentID != nil {
		departmentID = *user.DepartmentID
	}

	records, err := database.GetAbsenteesByDate(db, date, departmentID)
	if err != nil {
		config.LogError("reports", "absenteesForExport", "load absentees", dateStr, err)
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch absentees")
	}
	return records, dateStr, nil
}

var absenteeHeader = []string{"Date", "Class", "Register No", "Student"}

// ExportAbsenteesXLSXAPI exports the absentee register for one date.
func ExportAbsenteesXLSXAPI(c *fiber.Ctx, db *sql.DB) error {
	records, dateStr, err := absenteesForExport(c, db)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Absentees"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range absenteeHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, r := range records {
		row := []string{dateStr, r.ClassName, r.RegisterNo, r.StudentName}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build workbook")
	}

	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=absentees-%s.xlsx`, dateStr))
	return c.Send(buf.Bytes())
}

// ExportAbsenteesCSVAPI exports the absentee register for one date as CSV.
func ExportAbsenteesCSVAPI(c *fiber.Ctx, db *sql.DB) error {
	records, dateStr, err := absenteesForExport(c, db)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(absenteeHeader); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
	}
	for _, r := range records {
		if err := w.Write([]string{dateStr, r.ClassName, r.RegisterNo, r.StudentName}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to write CSV")
	}

	c.Set(fiber.HeaderContentType, contentTypeCSV)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=absentees-%s.csv`, dateStr))
	return c.Send(buf.Bytes())
}
