package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetTotals overwrites the total amount of each supplied category with merge
// semantics: unspecified categories and all paid values are preserved. A new
// total below a category's already-paid amount is rejected, so balances never
// go negative.
//
// All updates are validated before any line is touched; a rejected edit
// leaves the profile exactly as it was.
func (p *Profile) SetTotals(updates map[Category]decimal.Decimal, recordedBy string, now time.Time) error {
	for category, total := range updates {
		if !category.Valid() {
			return validationErrorf("unknown fee category %q", category)
		}
		if total.IsNegative() {
			return validationErrorf("%s total must not be negative", category)
		}
		if total.LessThan(p.Lines[category].Paid) {
			return &InvalidTotalError{Category: category, Total: total, Paid: p.Lines[category].Paid}
		}
	}

	for category, total := range updates {
		line := p.Lines[category]
		line.Total = total
		p.Lines[category] = line
	}
	p.Reconcile()
	p.UpdatedAt = now
	p.RecordedBy = recordedBy
	return nil
}
