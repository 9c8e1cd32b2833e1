package order

import (
	"fmt"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/pkg/errs"
)

// PaymentStatus is the secondary, derived status of an order: how much of the total
// has been paid.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota
	// PaymentStatusPending means nothing has been paid.
	PaymentStatusPending
	// PaymentStatusPartial means something but not everything has been paid.
	PaymentStatusPartial
	// PaymentStatusCompleted means the total has been paid.
	PaymentStatusCompleted
	// PaymentStatusRefunded is the exception path after a refund.
	PaymentStatusRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:         "unknown",
		PaymentStatusPending:   "pending",
		PaymentStatusPartial:   "partial",
		PaymentStatusCompleted: "completed",
		PaymentStatusRefunded:  "refunded",
	}
}

// ParsePaymentStatus converts a persisted name into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if name == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the wire name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// DerivePaymentStatus is the single rule relating amounts to the payment status:
// pending iff paid is zero, completed iff paid equals total, partial otherwise.
func DerivePaymentStatus(paid kernel.Money, total kernel.Money) PaymentStatus {
	switch {
	case paid.IsZero():
		return PaymentStatusPending
	case paid.Cmp(total) >= 0:
		return PaymentStatusCompleted
	default:
		return PaymentStatusPartial
	}
}
