package order_test

import (
	"errors"
	"fmt"
	"testing"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.Accepted,
		order.Rejected,
		order.PaymentPending,
		order.PaymentConfirmed,
		order.ReadyForDelivery,
		order.InTransit,
		order.Delivered,
		order.Cancelled,
	}
}

func TestStatus_String(t *testing.T) {
	expected := map[order.Status]string{
		order.Unknown:          "unknown",
		order.Pending:          "pending",
		order.Accepted:         "accepted",
		order.Rejected:         "rejected",
		order.PaymentPending:   "payment_pending",
		order.PaymentConfirmed: "payment_confirmed",
		order.ReadyForDelivery: "ready_for_delivery",
		order.InTransit:        "in_transit",
		order.Delivered:        "delivered",
		order.Cancelled:        "cancelled",
		order.Status(99):       "unknown",
	}

	for status, name := range expected {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every defined status", func(t *testing.T) {
		for _, status := range allStatuses() {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "unknown", "shipped", "PENDING"} {
			_, err := order.ParseStatus(name)

			require.Error(t, err, name)
			assert.True(t, errors.Is(err, errs.ErrValueIsInvalid), name)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate defined statuses", func(t *testing.T) {
		for _, status := range allStatuses() {
			require.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("should reject Unknown and out of range values", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		err := order.Status(42).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "42 is not a valid status")
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:          {order.Accepted, order.Rejected, order.Cancelled},
		order.Accepted:         {order.PaymentPending, order.PaymentConfirmed, order.ReadyForDelivery, order.Cancelled},
		order.PaymentPending:   {order.PaymentConfirmed, order.ReadyForDelivery, order.Cancelled},
		order.PaymentConfirmed: {order.ReadyForDelivery, order.Cancelled},
		order.ReadyForDelivery: {order.InTransit, order.Cancelled},
		order.InTransit:        {order.Delivered, order.Cancelled},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}

			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				assert.Equal(t, want, from.CanTransitionTo(to))

				next, err := from.TransitionTo(to)
				if want {
					require.NoError(t, err)
					assert.Equal(t, to, next)
				} else {
					require.Error(t, err)
					assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
					assert.Equal(t, order.Unknown, next)
				}
			})
		}
	}
}

func TestStatus_NeverRegresses(t *testing.T) {
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			if !from.CanTransitionTo(to) || to == order.Cancelled {
				continue
			}
			assert.True(t, to.IsAfter(from), "%s -> %s moves backwards", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, status := range allStatuses() {
		terminal := status == order.Rejected || status == order.Delivered || status == order.Cancelled
		assert.Equal(t, terminal, status.IsTerminal(), status.String())
		if terminal {
			for _, to := range allStatuses() {
				assert.False(t, status.CanTransitionTo(to), "%s -> %s", status, to)
			}
		} else {
			assert.True(t, status.CanTransitionTo(order.Cancelled), status.String())
		}
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	money := func(v string) kernel.Money {
		m, err := kernel.NewMoney(decimal.RequireFromString(v))
		require.NoError(t, err)
		return m
	}
	total := money("1000")

	tests := []struct {
		paid string
		want order.PaymentStatus
	}{
		{"0", order.PaymentStatusPending},
		{"0.01", order.PaymentStatusPartial},
		{"600", order.PaymentStatusPartial},
		{"999.99", order.PaymentStatusPartial},
		{"1000", order.PaymentStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.paid, func(t *testing.T) {
			assert.Equal(t, tt.want, order.DerivePaymentStatus(money(tt.paid), total))
		})
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, s := range []order.PaymentStatus{
		order.PaymentStatusPending,
		order.PaymentStatusPartial,
		order.PaymentStatusCompleted,
		order.PaymentStatusRefunded,
	} {
		parsed, err := order.ParsePaymentStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParsePaymentStatus("paid")
	require.Error(t, err)
}

func TestParseUnit(t *testing.T) {
	t.Run("should default to kg", func(t *testing.T) {
		u, err := order.ParseUnit("")
		require.NoError(t, err)
		assert.Equal(t, order.UnitKg, u)
	})

	t.Run("should accept known units", func(t *testing.T) {
		for _, name := range []string{"kg", "quintal", "ton"} {
			u, err := order.ParseUnit(name)
			require.NoError(t, err)
			assert.Equal(t, name, u.String())
		}
	})

	t.Run("should reject other units", func(t *testing.T) {
		_, err := order.ParseUnit("lb")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"lb" is not one of kg, quintal, ton`)
	})
}
