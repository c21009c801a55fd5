package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPayment applies an incremental payment to one category and returns
// the matching transaction record. The profile is only mutated when the
// payment is accepted; on error it is left untouched.
//
// The category's balance must cover the full amount. Overpayment is
// rejected here even though the UI disables the control, since this is the
// last line of defense against double-submission races.
func (p *Profile) ApplyPayment(category Category, amount decimal.Decimal, recordedBy string, now time.Time) (*Transaction, error) {
	if !category.Valid() {
		return nil, validationErrorf("unknown fee category %q", category)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationErrorf("payment amount must be greater than zero")
	}

	line := p.Lines[category]
	if line.Balance.LessThanOrEqual(decimal.Zero) {
		return nil, &OverpaymentError{Category: category, Balance: line.Balance, Amount: amount}
	}
	if amount.GreaterThan(line.Balance) {
		return nil, &OverpaymentError{Category: category, Balance: line.Balance, Amount: amount}
	}

	line.Paid = line.Paid.Add(amount)
	p.Lines[category] = line
	p.Reconcile()
	p.UpdatedAt = now
	p.RecordedBy = recordedBy

	return &Transaction{
		FeeID:      p.StudentID,
		FeeType:    category,
		Amount:     amount,
		Date:       now,
		RecordedBy: recordedBy,
	}, nil
}
