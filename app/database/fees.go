package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vijayasankar22/SVCET-Attendance-Tracker/app/ledger"
)

// FeeFilters represents filtering options for fee profiles
type FeeFilters struct {
	ClassID      string
	DepartmentID string
	Status       string // "paid", "partial", "unpaid"
	Search       string
	Limit        int
	Offset       int
}

type rowQuerier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// loadProfile reads a profile and its category lines. With forUpdate it locks
// the profile row, serializing concurrent recorders on the same student.
func loadProfile(q rowQuerier, studentID string, forUpdate bool) (*ledger.Profile, error) {
	query := `SELECT f.student_id, f.total_amount, f.total_paid, f.total_balance,
			  COALESCE(f.recorded_by::text, ''), f.updated_at
			  FROM fee_profiles f WHERE f.student_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	p := &ledger.Profile{Lines: make(map[ledger.Category]ledger.Line)}
	err := q.QueryRow(query, studentID).Scan(
		&p.StudentID, &p.TotalAmount, &p.TotalPaid, &p.TotalBalance,
		&p.RecordedBy, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(`SELECT category, total, paid, balance FROM fee_lines WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for _, c := range ledger.Categories() {
		p.Lines[c] = ledger.Line{}
	}
	for rows.Next() {
		var category string
		var line ledger.Line
		if err := rows.Scan(&category, &line.Total, &line.Paid, &line.Balance); err != nil {
			return nil, err
		}
		p.Lines[ledger.Category(category)] = line
	}
	return p, rows.Err()
}

// attachStudent fills the denormalized student fields on a profile.
func attachStudent(q rowQuerier, p *ledger.Profile) error {
	query := `SELECT s.first_name || CASE WHEN s.last_name = '' THEN '' ELSE ' ' || s.last_name END,
			  s.class_id, s.register_no
			  FROM students s WHERE s.id = $1`
	return q.QueryRow(query, p.StudentID).Scan(&p.StudentName, &p.ClassID, &p.RegisterNo)
}

// createProfileTx inserts an all-zero profile for the student. The student
// must exist; fee profiles are created implicitly on first edit.
func createProfileTx(tx *sql.Tx, studentID string) (*ledger.Profile, error) {
	var exists bool
	err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1 AND is_active = true)`,
		studentID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ledger.ErrProfileNotFound
	}

	if _, err := tx.Exec(`INSERT INTO fee_profiles (student_id) VALUES ($1)`, studentID); err != nil {
		return nil, err
	}
	for _, c := range ledger.Categories() {
		if _, err := tx.Exec(`INSERT INTO fee_lines (student_id, category) VALUES ($1, $2)`,
			studentID, string(c)); err != nil {
			return nil, err
		}
	}
	return ledger.NewProfile(studentID), nil
}

// saveProfileTx writes the reconciled lines and aggregates back.
func saveProfileTx(tx *sql.Tx, p *ledger.Profile) error {
	_, err := tx.Exec(`UPDATE fee_profiles
					   SET total_amount = $1, total_paid = $2, total_balance = $3,
						   recorded_by = NULLIF($4, '')::uuid, updated_at = $5
					   WHERE student_id = $6`,
		p.TotalAmount, p.TotalPaid, p.TotalBalance, p.RecordedBy, p.UpdatedAt, p.StudentID)
	if err != nil {
		return err
	}

	for _, c := range ledger.Categories() {
		line := p.Lines[c]
		_, err = tx.Exec(`UPDATE fee_lines SET total = $1, paid = $2, balance = $3
						  WHERE student_id = $4 AND category = $5`,
			line.Total, line.Paid, line.Balance, p.StudentID, string(c))
		if err != nil {
			return err
		}
	}
	return nil
}

// RecordPayment applies one payment to one category of a student's ledger and
// appends the matching transaction row, all in a single database transaction.
// Either both writes commit or neither does. The profile row is locked for
// the duration, so two staff members recording against the same student see
// each other's committed state, never a stale balance.
func RecordPayment(db *sql.DB, studentID string, category ledger.Category, amount decimal.Decimal, recordedBy string) (*ledger.Profile, *ledger.Transaction, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, nil, &ledger.PersistenceError{Op: "begin payment transaction", Err: err}
	}
	defer tx.Rollback()

	profile, err := loadProfile(tx, studentID, true)
	if err == ledger.ErrProfileNotFound {
		return nil, nil, err
	}
	if err != nil {
		return nil, nil, &ledger.PersistenceError{Op: "load fee profile", Err: err}
	}

	now := time.Now()
	trans, err := profile.ApplyPayment(category, amount, recordedBy, now)
	if err != nil {
		return nil, nil, err
	}

	if err = saveProfileTx(tx, profile); err != nil {
		return nil, nil, &ledger.PersistenceError{Op: "save fee profile", Err: err}
	}

	err = tx.QueryRow(`INSERT INTO fee_transactions (fee_id, fee_type, amount, date, recorded_by)
					   VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)
					   RETURNING id, created_at`,
		trans.FeeID, string(trans.FeeType), trans.Amount, trans.Date, trans.RecordedBy).Scan(
		&trans.ID, &trans.CreatedAt)
	if err != nil {
		return nil, nil, &ledger.PersistenceError{Op: "append fee transaction", Err: err}
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, &ledger.PersistenceError{Op: "commit payment", Err: err}
	}
	return profile, trans, nil
}

// SaveFeeTotals creates or updates the per-category totals for a student with
// merge semantics: untouched categories and all paid values are preserved.
// The profile is created on first edit.
func SaveFeeTotals(db *sql.DB, studentID string, updates map[ledger.Category]decimal.Decimal, recordedBy string) (*ledger.Profile, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, &ledger.PersistenceError{Op: "begin fee edit", Err: err}
	}
	defer tx.Rollback()

	profile, err := loadProfile(tx, studentID, true)
	if err == ledger.ErrProfileNotFound {
		profile, err = createProfileTx(tx, studentID)
		if err == ledger.ErrProfileNotFound {
			return nil, err
		}
	}
	if err != nil {
		return nil, &ledger.PersistenceError{Op: "load fee profile", Err: err}
	}

	if err = profile.SetTotals(updates, recordedBy, time.Now()); err != nil {
		return nil, err
	}

	if err = saveProfileTx(tx, profile); err != nil {
		return nil, &ledger.PersistenceError{Op: "save fee profile", Err: err}
	}
	if err = tx.Commit(); err != nil {
		return nil, &ledger.PersistenceError{Op: "commit fee edit", Err: err}
	}
	return profile, nil
}

// GetFeeProfile returns one student's ledger with student details attached.
func GetFeeProfile(db *sql.DB, studentID string) (*ledger.Profile, error) {
	profile, err := loadProfile(db, studentID, false)
	if err != nil {
		return nil, err
	}
	if err := attachStudent(db, profile); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return profile, nil
}

// ListFeeProfiles returns filtered profiles plus a total count. Lines are
// loaded per profile; the list endpoints are paginated so the N+1 stays small.
func ListFeeProfiles(db *sql.DB, filters FeeFilters) ([]*ledger.Profile, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", argIndex))
		args = append(args, filters.ClassID)
		argIndex++
	}
	if filters.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("c.department_id = $%d", argIndex))
		args = append(args, filters.DepartmentID)
		argIndex++
	}
	switch filters.Status {
	case "paid":
		conditions = append(conditions, "f.total_balance <= 0 AND f.total_amount > 0")
	case "partial":
		conditions = append(conditions, "f.total_balance > 0 AND f.total_paid > 0")
	case "unpaid":
		conditions = append(conditions, "f.total_balance > 0 AND f.total_paid = 0")
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(s.register_no) LIKE $%d OR LOWER(s.first_name || ' ' || s.last_name) LIKE $%d)`,
			argIndex, argIndex+1))
		args = append(args, pattern, pattern)
		argIndex += 2
	}

	where := ""
	if len(conditions) > 0 {
		where = " AND " + strings.Join(conditions, " AND ")
	}

	base := `FROM fee_profiles f
			 JOIN students s ON f.student_id = s.id
			 JOIN classes c ON s.class_id = c.id
			 WHERE s.is_active = true` + where

	var totalCount int
	if err := db.QueryRow(`SELECT COUNT(*) `+base, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT f.student_id, f.total_amount, f.total_paid, f.total_balance,
			  COALESCE(f.recorded_by::text, ''), f.updated_at,
			  s.first_name || CASE WHEN s.last_name = '' THEN '' ELSE ' ' || s.last_name END,
			  s.class_id, s.register_no ` + base + ` ORDER BY s.register_no`
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []*ledger.Profile
	for rows.Next() {
		p := &ledger.Profile{}
		err := rows.Scan(&p.StudentID, &p.TotalAmount, &p.TotalPaid, &p.TotalBalance,
			&p.RecordedBy, &p.UpdatedAt, &p.StudentName, &p.ClassID, &p.RegisterNo)
		if err != nil {
			continue
		}
		profiles = append(profiles, p)
	}

	for _, p := range profiles {
		lines, err := loadLines(db, p.StudentID)
		if err != nil {
			return nil, 0, err
		}
		p.Lines = lines
	}
	return profiles, totalCount, nil
}

func loadLines(q rowQuerier, studentID string) (map[ledger.Category]ledger.Line, error) {
	rows, err := q.Query(`SELECT category, total, paid, balance FROM fee_lines WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[ledger.Category]ledger.Line, len(ledger.Categories()))
	for _, c := range ledger.Categories() {
		lines[c] = ledger.Line{}
	}
	for rows.Next() {
		var category string
		var line ledger.Line
		if err := rows.Scan(&category, &line.Total, &line.Paid, &line.Balance); err != nil {
			return nil, err
		}
		lines[ledger.Category(category)] = line
	}
	return lines, rows.Err()
}

// GetFeeTransactions returns a profile's payment log, newest first.
func GetFeeTransactions(db *sql.DB, feeID string) ([]*ledger.Transaction, error) {
	query := `SELECT id, fee_id, fee_type, amount, date, COALESCE(recorded_by::text, ''), created_at
			  FROM fee_transactions WHERE fee_id = $1 ORDER BY created_at DESC`
	rows, err := db.Query(query, feeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*ledger.Transaction
	for rows.Next() {
		t := &ledger.Transaction{}
		var feeType string
		err := rows.Scan(&t.ID, &t.FeeID, &feeType, &t.Amount, &t.Date, &t.RecordedBy, &t.CreatedAt)
		if err != nil {
			continue
		}
		t.FeeType = ledger.Category(feeType)
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// LedgerMismatch is one reconciliation failure found by AuditLedger.
type LedgerMismatch struct {
	StudentID string          `json:"student_id"`
	Category  string          `json:"category"`
	Paid      decimal.Decimal `json:"paid"`
	TxSum     decimal.Decimal `json:"transaction_sum"`
}

// AuditLedger cross-checks every category's paid value against the sum of its
// transaction log. A healthy ledger returns no rows. Run nightly.
func AuditLedger(db *sql.DB) ([]LedgerMismatch, error) {
	query := `
		SELECT l.student_id, l.category, l.paid, COALESCE(t.tx_sum, 0)
		FROM fee_lines l
		LEFT JOIN (
			SELECT fee_id, fee_type, SUM(amount) AS tx_sum
			FROM fee_transactions
			GROUP BY fee_id, fee_type
		) t ON t.fee_id = l.student_id AND t.fee_type = l.category
		WHERE l.paid <> COALESCE(t.tx_sum, 0)`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mismatches []LedgerMismatch
	for rows.Next() {
		var m LedgerMismatch
		if err := rows.Scan(&m.StudentID, &m.Category, &m.Paid, &m.TxSum); err != nil {
			return nil, err
		}
		mismatches = append(mismatches, m)
	}
	return mismatches, rows.Err()
}
