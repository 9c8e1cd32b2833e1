package transaction_test

import (
	"errors"
	"testing"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paidAt = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func amount(t *testing.T, v string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(v))
	require.NoError(t, err)
	return m
}

func newPayment(t *testing.T) *transaction.Transaction {
	t.Helper()
	tx, err := transaction.NewPayment(kernel.NewUUID(), "TXN-1741946400000-7", kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), amount(t, "600"), transaction.MethodUPI, "UTR123", "first instalment", paidAt)
	require.NoError(t, err)
	return tx
}

func TestNewPayment(t *testing.T) {
	t.Run("should create an unapplied completed payment", func(t *testing.T) {
		tx := newPayment(t)

		require.NoError(t, tx.Validate())
		assert.Equal(t, transaction.KindPayment, tx.Kind())
		assert.Equal(t, transaction.StatusCompleted, tx.Status())
		assert.Equal(t, transaction.MethodUPI, tx.Method())
		assert.Equal(t, "600.00", tx.Amount().String())
		assert.Equal(t, "UTR123", tx.Reference())
		assert.Equal(t, paidAt, tx.PaymentDate())
		assert.NotNil(t, tx.OrderID())
		assert.False(t, tx.IsApplied())
		assert.True(t, tx.IsApplicable())
	})

	t.Run("should validate amount and method", func(t *testing.T) {
		tx, err := transaction.NewPayment(kernel.NewUUID(), "TXN-1-1", kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), kernel.ZeroMoney(), transaction.Method("barter"), "", "", paidAt)

		require.Error(t, err)
		assert.Nil(t, tx)
		assert.Contains(t, err.Error(), "0.00 is not greater than 0")
		assert.Contains(t, err.Error(), `"barter" is not a valid payment method`)
	})

	t.Run("should require a number", func(t *testing.T) {
		_, err := transaction.NewPayment(kernel.NewUUID(), " ", kernel.NewUUID(), kernel.NewUUID(),
			kernel.NewUUID(), amount(t, "1"), transaction.MethodCash, "", "", paidAt)

		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})
}

func TestTransaction_MarkApplied(t *testing.T) {
	tx := newPayment(t)
	appliedAt := paidAt.Add(time.Second)

	require.NoError(t, tx.MarkApplied(appliedAt))
	require.NotNil(t, tx.AppliedAt())
	assert.Equal(t, appliedAt, *tx.AppliedAt())
	assert.False(t, tx.IsApplicable())

	err := tx.MarkApplied(appliedAt)
	assert.True(t, errors.Is(err, errs.ErrInvalidState))
}

func TestTransaction_MarkFailed(t *testing.T) {
	tx := newPayment(t)

	require.NoError(t, tx.MarkFailed("order was cancelled"))

	assert.Equal(t, transaction.StatusFailed, tx.Status())
	assert.Equal(t, "first instalment (order was cancelled)", tx.Description())
	assert.False(t, tx.IsApplicable())
	assert.True(t, errors.Is(tx.MarkApplied(paidAt), errs.ErrInvalidState))
}

func TestTransaction_CanBeReadBy(t *testing.T) {
	tx := newPayment(t)
	buyer, _ := kernel.NewActor(tx.BuyerID(), kernel.RoleBuyer)
	seller, _ := kernel.NewActor(tx.SellerID(), kernel.RoleFarmer)
	admin, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	stranger, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleBuyer)

	assert.True(t, tx.CanBeReadBy(buyer))
	assert.True(t, tx.CanBeReadBy(seller))
	assert.True(t, tx.CanBeReadBy(admin))
	assert.False(t, tx.CanBeReadBy(stranger))
}

func TestRestoreTransaction(t *testing.T) {
	src := newPayment(t)
	state := transaction.State{
		ID:          src.ID(),
		Number:      src.Number(),
		OrderID:     src.OrderID(),
		BuyerID:     src.BuyerID(),
		SellerID:    src.SellerID(),
		Kind:        src.Kind(),
		Amount:      src.Amount(),
		Method:      src.Method(),
		Status:      src.Status(),
		Description: src.Description(),
		Reference:   src.Reference(),
		PaymentDate: src.PaymentDate(),
		CreatedAt:   src.CreatedAt(),
	}

	t.Run("should restore", func(t *testing.T) {
		tx, err := transaction.RestoreTransaction(state)

		require.NoError(t, err)
		assert.Equal(t, src.Number(), tx.Number())
		assert.True(t, tx.IsApplicable())
	})

	t.Run("should restore an adjustment without order", func(t *testing.T) {
		s := state
		s.OrderID = nil
		s.Kind = transaction.KindAdjustment

		tx, err := transaction.RestoreTransaction(s)

		require.NoError(t, err)
		assert.Nil(t, tx.OrderID())
		assert.False(t, tx.IsApplicable())
	})

	t.Run("should refuse unknown kind and status", func(t *testing.T) {
		s := state
		s.Kind = "gift"
		s.Status = "lost"

		_, err := transaction.RestoreTransaction(s)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"gift"`)
		assert.Contains(t, err.Error(), `"lost"`)
	})
}
