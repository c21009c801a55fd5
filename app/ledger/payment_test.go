package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

func tuitionProfile(total, paid string) *Profile {
	p := NewProfile("stu-1")
	p.Lines[Tuition] = Line{Total: dec(total), Paid: dec(paid)}
	p.Reconcile()
	return p
}

func TestApplyPayment_Valid(t *testing.T) {
	p := tuitionProfile("10000", "4000")

	tx, err := p.ApplyPayment(Tuition, dec("1500"), "staff-1", testNow)
	require.NoError(t, err)

	assert.True(t, p.Lines[Tuition].Paid.Equal(dec("5500")))
	assert.True(t, p.Lines[Tuition].Balance.Equal(dec("4500")))
	assert.True(t, p.TotalPaid.Equal(dec("5500")))
	assert.True(t, p.TotalBalance.Equal(dec("4500")))
	assert.Equal(t, "staff-1", p.RecordedBy)
	assert.Equal(t, testNow, p.UpdatedAt)
	assertConsistent(t, p)

	require.NotNil(t, tx)
	assert.Equal(t, "stu-1", tx.FeeID)
	assert.Equal(t, Tuition, tx.FeeType)
	assert.True(t, tx.Amount.Equal(dec("1500")))
	assert.Equal(t, "staff-1", tx.RecordedBy)
}

// Settling the tuition balance exactly closes the category out.
func TestApplyPayment_SettlesBalance(t *testing.T) {
	p := tuitionProfile("10000", "4000")
	before := p.TotalBalance

	tx, err := p.ApplyPayment(Tuition, dec("6000"), "staff-1", testNow)
	require.NoError(t, err)

	assert.True(t, p.Lines[Tuition].Total.Equal(dec("10000")))
	assert.True(t, p.Lines[Tuition].Paid.Equal(dec("10000")))
	assert.True(t, p.Lines[Tuition].Balance.IsZero())
	assert.True(t, before.Sub(p.TotalBalance).Equal(dec("6000")))
	assert.True(t, tx.Amount.Equal(dec("6000")))
	assertConsistent(t, p)
}

func TestApplyPayment_Overpayment(t *testing.T) {
	p := tuitionProfile("10000", "4000")
	before := p.Clone()

	tx, err := p.ApplyPayment(Tuition, dec("6000.01"), "staff-1", testNow)
	require.Error(t, err)
	assert.Nil(t, tx)

	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, Tuition, overErr.Category)
	assert.True(t, overErr.Balance.Equal(dec("6000")))

	// Rejected payment must leave the profile untouched.
	assert.Equal(t, before.Lines, p.Lines)
	assert.True(t, before.TotalPaid.Equal(p.TotalPaid))
	assert.True(t, before.TotalBalance.Equal(p.TotalBalance))
}

func TestApplyPayment_ZeroBalanceCategory(t *testing.T) {
	p := NewProfile("stu-1")

	tx, err := p.ApplyPayment(Exam, dec("100"), "staff-1", testNow)
	assert.Nil(t, tx)

	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)
}

func TestApplyPayment_Validation(t *testing.T) {
	p := tuitionProfile("10000", "0")

	var valErr *ValidationError

	_, err := p.ApplyPayment(Category("library"), dec("100"), "staff-1", testNow)
	require.ErrorAs(t, err, &valErr)

	_, err = p.ApplyPayment(Tuition, decimal.Zero, "staff-1", testNow)
	require.ErrorAs(t, err, &valErr)

	_, err = p.ApplyPayment(Tuition, dec("-50"), "staff-1", testNow)
	require.ErrorAs(t, err, &valErr)

	assert.True(t, p.TotalPaid.IsZero())
}

// Two staff members racing on the same category: the second attempt operates
// on the state the first committed, never on a stale read. With a 6000
// balance, two 4000 payments cannot both succeed.
func TestApplyPayment_SequentialConflict(t *testing.T) {
	p := tuitionProfile("10000", "4000")

	_, err := p.ApplyPayment(Tuition, dec("4000"), "staff-1", testNow)
	require.NoError(t, err)

	_, err = p.ApplyPayment(Tuition, dec("4000"), "staff-2", testNow.Add(time.Second))
	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.True(t, overErr.Balance.Equal(dec("2000")))

	assert.True(t, p.Lines[Tuition].Paid.Equal(dec("8000")))
	assertConsistent(t, p)
}

// The append-only log always sums to the category's paid value.
func TestApplyPayment_TransactionSumMatchesPaid(t *testing.T) {
	p := NewProfile("stu-1")
	require.NoError(t, p.SetTotals(map[Category]decimal.Decimal{
		Tuition: dec("10000"),
		Exam:    dec("2000"),
	}, "staff-1", testNow))

	var log []*Transaction
	for _, step := range []struct {
		cat    Category
		amount string
	}{
		{Tuition, "2500"},
		{Exam, "500"},
		{Tuition, "1000"},
		{Exam, "1500"},
	} {
		tx, err := p.ApplyPayment(step.cat, dec(step.amount), "staff-1", testNow)
		require.NoError(t, err)
		log = append(log, tx)
	}

	for _, c := range Categories() {
		sum := decimal.Zero
		for _, tx := range log {
			if tx.FeeType == c {
				sum = sum.Add(tx.Amount)
			}
		}
		assert.True(t, sum.Equal(p.Lines[c].Paid),
			"category %s: transaction sum %s != paid %s", c, sum, p.Lines[c].Paid)
	}
	assertConsistent(t, p)
}
