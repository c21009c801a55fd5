package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrProfileNotFound is returned when a referenced fee profile does not exist.
var ErrProfileNotFound = errors.New("fee profile not found")

// ValidationError reports malformed input (unknown category, non-positive
// amount) caught before any state is touched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// OverpaymentError is returned when a payment exceeds the category's
// remaining balance. Overpayment is rejected outright; the stored profile
// and transaction log are left unchanged.
type OverpaymentError struct {
	Category Category
	Balance  decimal.Decimal
	Amount   decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds %s balance of %s",
		e.Amount.StringFixed(2), e.Category, e.Balance.StringFixed(2))
}

// InvalidTotalError is returned when an edit would set a category's total
// below its already-paid amount. Credit balances are not supported.
type InvalidTotalError struct {
	Category Category
	Total    decimal.Decimal
	Paid     decimal.Decimal
}

func (e *InvalidTotalError) Error() string {
	return fmt.Sprintf("%s total %s is below already paid amount %s",
		e.Category, e.Total.StringFixed(2), e.Paid.StringFixed(2))
}

// PersistenceError wraps a store failure. Callers must treat the operation
// as not applied; the transaction is rolled back before this is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
