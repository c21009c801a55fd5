package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// assertConsistent checks the core reconciliation invariants on a profile.
func assertConsistent(t *testing.T, p *Profile) {
	t.Helper()
	total := decimal.Zero
	paid := decimal.Zero
	for _, c := range Categories() {
		line := p.Lines[c]
		assert.True(t, line.Balance.Equal(line.Total.Sub(line.Paid)),
			"category %s: balance != total - paid", c)
		total = total.Add(line.Total)
		paid = paid.Add(line.Paid)
	}
	assert.True(t, p.TotalAmount.Equal(total), "totalAmount != sum of totals")
	assert.True(t, p.TotalPaid.Equal(paid), "totalPaid != sum of paid")
	assert.True(t, p.TotalBalance.Equal(p.TotalAmount.Sub(p.TotalPaid)),
		"totalBalance != totalAmount - totalPaid")
}

func TestNewProfile_AllCategoriesZero(t *testing.T) {
	p := NewProfile("stu-1")

	require.Len(t, p.Lines, len(Categories()))
	for _, c := range Categories() {
		line, ok := p.Lines[c]
		require.True(t, ok, "missing category %s", c)
		assert.True(t, line.Total.IsZero())
		assert.True(t, line.Paid.IsZero())
		assert.True(t, line.Balance.IsZero())
	}
	assertConsistent(t, p)
}

func TestReconcile_DerivesBalancesAndAggregates(t *testing.T) {
	p := NewProfile("stu-1")
	p.Lines[Tuition] = Line{Total: dec("10000"), Paid: dec("4000")}
	p.Lines[Exam] = Line{Total: dec("2000"), Paid: dec("500")}

	p.Reconcile()

	assert.True(t, p.Lines[Tuition].Balance.Equal(dec("6000")))
	assert.True(t, p.Lines[Exam].Balance.Equal(dec("1500")))
	assert.True(t, p.TotalAmount.Equal(dec("12000")))
	assert.True(t, p.TotalPaid.Equal(dec("4500")))
	assert.True(t, p.TotalBalance.Equal(dec("7500")))
	assertConsistent(t, p)
}

func TestReconcile_Idempotent(t *testing.T) {
	p := NewProfile("stu-1")
	p.Lines[Transport] = Line{Total: dec("1200.50"), Paid: dec("200.25")}
	p.Reconcile()

	first := p.Clone()
	p.Reconcile()

	assert.Equal(t, first.Lines, p.Lines)
	assert.True(t, first.TotalAmount.Equal(p.TotalAmount))
	assert.True(t, first.TotalPaid.Equal(p.TotalPaid))
	assert.True(t, first.TotalBalance.Equal(p.TotalBalance))
}

func TestClone_Independent(t *testing.T) {
	p := NewProfile("stu-1")
	p.Lines[Hostel] = Line{Total: dec("5000")}
	p.Reconcile()

	cp := p.Clone()
	cp.Lines[Hostel] = Line{Total: dec("9999")}
	cp.Reconcile()

	assert.True(t, p.Lines[Hostel].Total.Equal(dec("5000")), "clone mutation leaked into original")
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("library").Valid())
	assert.False(t, Category("").Valid())
}
