package kernel

import (
	"fmt"

	"farmtrade/internal/pkg/errs"
	"farmtrade/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for every amount.
const MoneyScale = 2

// ErrMoneyIsNotConstructed is returned when a zero Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or ZeroMoney")

// Money is a non-negative amount in the marketplace currency, rounded to MoneyScale
// fractional digits. It is immutable; arithmetic returns new values.
//
// Example:
//
//	price, _ := kernel.NewMoney(decimal.NewFromInt(20))
//	total := price.MulQuantity(decimal.NewFromInt(50)) // 1000.00
//
//	paid, _ := kernel.NewMoney(decimal.RequireFromString("600"))
//	outstanding, _ := total.Sub(paid) // 400.00
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney rounds amount to MoneyScale digits and rejects negatives.
//
// Returns:
//   - Money: the rounded amount
//   - error: ValueIsInvalidError when amount is negative
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is negative", amount.String()))
	}

	return Money{
		amount: amount.Round(MoneyScale),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewPositiveMoney is NewMoney that also rejects zero, for prices and payments.
func NewPositiveMoney(amount decimal.Decimal) (Money, error) {
	m, err := NewMoney(amount)
	if err != nil {
		return Money{}, err
	}

	if !m.IsPositive() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not greater than 0", amount.String()))
	}

	return m, nil
}

// ZeroMoney returns a valid zero amount.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate reports whether the value was built by a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Sub returns m - other, failing if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// MulQuantity returns m x quantity rounded to MoneyScale digits.
func (m Money) MulQuantity(quantity decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(quantity).Round(MoneyScale), guard: guard.NewConstructorGuard()}
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports whether both amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
