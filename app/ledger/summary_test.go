package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func profileWith(total, paid string) *Profile {
	p := NewProfile("stu")
	p.Lines[Tuition] = Line{Total: dec(total), Paid: dec(paid)}
	p.Reconcile()
	return p
}

// Balances {0, 500, 1000}: one fully paid, one partial, one unpaid.
func TestSummarize_StatusCounts(t *testing.T) {
	profiles := []*Profile{
		profileWith("2000", "2000"), // balance 0
		profileWith("1000", "500"),  // balance 500, partial
		profileWith("1000", "0"),    // balance 1000, unpaid
	}

	s := Summarize(profiles)

	assert.Equal(t, 3, s.ProfileCount)
	assert.Equal(t, 1, s.PaidCount)
	assert.Equal(t, 1, s.PartialCount)
	assert.Equal(t, 1, s.UnpaidCount)
	assert.True(t, s.TotalAmount.Equal(dec("4000")))
	assert.True(t, s.TotalPaid.Equal(dec("2500")))
	assert.True(t, s.TotalBalance.Equal(dec("1500")))
}

// An all-zero ledger is neither paid nor unpaid; it simply has no dues.
func TestSummarize_EmptyLedgerNotCounted(t *testing.T) {
	s := Summarize([]*Profile{NewProfile("stu-1")})

	assert.Equal(t, 1, s.ProfileCount)
	assert.Equal(t, 0, s.PaidCount)
	assert.Equal(t, 0, s.PartialCount)
	assert.Equal(t, 0, s.UnpaidCount)
}

func TestSummarize_NoProfiles(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.ProfileCount)
	assert.True(t, s.TotalAmount.IsZero())
	assert.True(t, s.TotalBalance.IsZero())
}
