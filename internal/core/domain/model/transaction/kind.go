package transaction

import (
	"fmt"

	"farmtrade/internal/pkg/errs"
)

// Kind tells what a transaction does to the balance of an order.
type Kind string

const (
	KindPayment    Kind = "payment"
	KindRefund     Kind = "refund"
	KindAdjustment Kind = "adjustment"
)

// ParseKind converts a name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindPayment, KindRefund, KindAdjustment:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid transaction type", s))
	}
}

func (k Kind) String() string {
	return string(k)
}

// Method is how the buyer paid.
type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodUPI          Method = "upi"
	MethodCheck        Method = "check"
	MethodCash         Method = "cash"
	MethodOnline       Method = "online"
	MethodOffline      Method = "offline"
)

// ParseMethod converts a name into a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodBankTransfer, MethodUPI, MethodCheck, MethodCash, MethodOnline, MethodOffline:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod", fmt.Errorf("%q is not a valid payment method", s))
	}
}

func (m Method) String() string {
	return string(m)
}
