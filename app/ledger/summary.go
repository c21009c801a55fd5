package ledger

import "github.com/shopspring/decimal"

// Summary is the dashboard rollup over a filtered set of profiles.
type Summary struct {
	ProfileCount int             `json:"profile_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	PaidCount    int             `json:"paid_count"`
	PartialCount int             `json:"partial_count"`
	UnpaidCount  int             `json:"unpaid_count"`
}

// Summarize rolls up profiles into totals and status counts. A student is
// fully paid when nothing is outstanding on a non-empty ledger, partial when
// something has been paid against an outstanding balance, and unpaid when the
// balance is untouched. Read-only; recomputed on every call.
func Summarize(profiles []*Profile) Summary {
	s := Summary{
		TotalAmount:  decimal.Zero,
		TotalPaid:    decimal.Zero,
		TotalBalance: decimal.Zero,
	}
	for _, p := range profiles {
		s.ProfileCount++
		s.TotalAmount = s.TotalAmount.Add(p.TotalAmount)
		s.TotalPaid = s.TotalPaid.Add(p.TotalPaid)
		s.TotalBalance = s.TotalBalance.Add(p.TotalBalance)

		switch {
		case p.TotalBalance.LessThanOrEqual(decimal.Zero) && p.TotalAmount.GreaterThan(decimal.Zero):
			s.PaidCount++
		case p.TotalBalance.GreaterThan(decimal.Zero) && p.TotalPaid.GreaterThan(decimal.Zero):
			s.PartialCount++
		case p.TotalBalance.GreaterThan(decimal.Zero):
			s.UnpaidCount++
		}
	}
	return s
}
