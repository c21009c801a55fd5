package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// First edit on a brand-new profile: one category set, the rest stay zero.
func TestSetTotals_NewProfile(t *testing.T) {
	p := NewProfile("stu-1")

	err := p.SetTotals(map[Category]decimal.Decimal{Exam: dec("2000")}, "staff-1", testNow)
	require.NoError(t, err)

	assert.True(t, p.Lines[Exam].Total.Equal(dec("2000")))
	assert.True(t, p.Lines[Exam].Paid.IsZero())
	assert.True(t, p.Lines[Exam].Balance.Equal(dec("2000")))
	for _, c := range []Category{Tuition, Transport, Hostel, Registration} {
		assert.True(t, p.Lines[c].Total.IsZero(), "category %s should stay zero", c)
	}
	assert.True(t, p.TotalAmount.Equal(dec("2000")))
	assert.True(t, p.TotalBalance.Equal(dec("2000")))
	assertConsistent(t, p)
}

// Merge semantics: untouched categories keep their totals and paid values.
func TestSetTotals_PreservesUnspecified(t *testing.T) {
	p := NewProfile("stu-1")
	p.Lines[Tuition] = Line{Total: dec("10000"), Paid: dec("4000")}
	p.Lines[Hostel] = Line{Total: dec("8000"), Paid: dec("8000")}
	p.Reconcile()

	err := p.SetTotals(map[Category]decimal.Decimal{Tuition: dec("12000")}, "staff-2", testNow)
	require.NoError(t, err)

	assert.True(t, p.Lines[Tuition].Total.Equal(dec("12000")))
	assert.True(t, p.Lines[Tuition].Paid.Equal(dec("4000")))
	assert.True(t, p.Lines[Tuition].Balance.Equal(dec("8000")))
	assert.True(t, p.Lines[Hostel].Total.Equal(dec("8000")))
	assert.True(t, p.Lines[Hostel].Paid.Equal(dec("8000")))
	assert.Equal(t, "staff-2", p.RecordedBy)
	assertConsistent(t, p)
}

func TestSetTotals_BelowPaidRejected(t *testing.T) {
	p := NewProfile("stu-1")
	p.Lines[Tuition] = Line{Total: dec("10000"), Paid: dec("4000")}
	p.Reconcile()
	before := p.Clone()

	err := p.SetTotals(map[Category]decimal.Decimal{Tuition: dec("3999.99")}, "staff-1", testNow)

	var totalErr *InvalidTotalError
	require.ErrorAs(t, err, &totalErr)
	assert.Equal(t, Tuition, totalErr.Category)
	assert.Equal(t, before.Lines, p.Lines)
}

// A batch containing one bad update must not apply any of the others.
func TestSetTotals_AllOrNothing(t *testing.T) {
	p := NewProfile("stu-1")
	p.Lines[Exam] = Line{Total: dec("2000"), Paid: dec("2000")}
	p.Reconcile()
	before := p.Clone()

	err := p.SetTotals(map[Category]decimal.Decimal{
		Tuition: dec("5000"),
		Exam:    dec("1000"), // below paid
	}, "staff-1", testNow)

	var totalErr *InvalidTotalError
	require.ErrorAs(t, err, &totalErr)
	assert.Equal(t, before.Lines, p.Lines)
	assert.True(t, before.TotalAmount.Equal(p.TotalAmount))
}

func TestSetTotals_Validation(t *testing.T) {
	p := NewProfile("stu-1")
	var valErr *ValidationError

	err := p.SetTotals(map[Category]decimal.Decimal{Category("sports"): dec("100")}, "staff-1", testNow)
	require.ErrorAs(t, err, &valErr)

	err = p.SetTotals(map[Category]decimal.Decimal{Tuition: dec("-1")}, "staff-1", testNow)
	require.ErrorAs(t, err, &valErr)
}
