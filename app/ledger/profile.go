package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one category's slice of a student's ledger.
// Balance is always derived: balance = total - paid.
type Line struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
}

// Profile is the per-student fee ledger across all categories.
// The aggregate fields always equal the sums of the per-category values.
type Profile struct {
	StudentID    string            `json:"student_id"`
	StudentName  string            `json:"student_name,omitempty"`
	ClassID      string            `json:"class_id,omitempty"`
	RegisterNo   string            `json:"register_no,omitempty"`
	Lines        map[Category]Line `json:"lines"`
	TotalAmount  decimal.Decimal   `json:"total_amount"`
	TotalPaid    decimal.Decimal   `json:"total_paid"`
	TotalBalance decimal.Decimal   `json:"total_balance"`
	UpdatedAt    time.Time         `json:"updated_at"`
	RecordedBy   string            `json:"recorded_by,omitempty"`
}

// Transaction is one immutable payment event appended to a profile's log.
type Transaction struct {
	ID         string          `json:"id"`
	FeeID      string          `json:"fee_id"`
	FeeType    Category        `json:"fee_type"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	RecordedBy string          `json:"recorded_by"`
	CreatedAt  time.Time       `json:"timestamp"`
}

// NewProfile returns a profile with zero lines in every category.
func NewProfile(studentID string) *Profile {
	p := &Profile{
		StudentID: studentID,
		Lines:     make(map[Category]Line, len(Categories())),
	}
	for _, c := range Categories() {
		p.Lines[c] = Line{}
	}
	p.Reconcile()
	return p
}

// Reconcile recomputes every line's balance and the three aggregate fields
// from the authoritative total/paid values. Pure with respect to I/O and
// idempotent: reconciling twice yields identical state.
func (p *Profile) Reconcile() {
	total := decimal.Zero
	paid := decimal.Zero
	for _, c := range Categories() {
		line := p.Lines[c]
		line.Balance = line.Total.Sub(line.Paid)
		p.Lines[c] = line
		total = total.Add(line.Total)
		paid = paid.Add(line.Paid)
	}
	p.TotalAmount = total
	p.TotalPaid = paid
	p.TotalBalance = total.Sub(paid)
}

// Clone returns a deep copy, so callers can stage a mutation and discard it
// on failure without touching the loaded state.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Lines = make(map[Category]Line, len(p.Lines))
	for c, l := range p.Lines {
		cp.Lines[c] = l
	}
	return &cp
}
