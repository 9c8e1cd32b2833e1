package kernel

import (
	"fmt"
	"strings"
	"time"

	"farmtrade/internal/pkg/errs"
)

const (
	// OrderNumberPrefix prefixes purchase order numbers.
	OrderNumberPrefix = "PO"
	// TransactionNumberPrefix prefixes transaction ids.
	TransactionNumberPrefix = "TXN"
)

// NewDocumentNumber formats a human readable document number as
// "<prefix>-<unix milliseconds>-<sequence>".
//
// The sequence must come from a monotonically increasing counter per prefix, so two
// documents created in the same millisecond still receive different numbers.
//
// Parameters:
//   - prefix: OrderNumberPrefix or TransactionNumberPrefix
//   - at: creation instant
//   - sequence: next value of the prefix counter (must be positive)
//
// Example:
//
//	n, _ := kernel.NewDocumentNumber(kernel.OrderNumberPrefix, time.UnixMilli(1700000000000), 42)
//	// n == "PO-1700000000000-42"
func NewDocumentNumber(prefix string, at time.Time, sequence int64) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", errs.NewValueIsRequiredError("prefix")
	}
	if sequence <= 0 {
		return "", errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	if at.IsZero() {
		return "", errs.NewValueIsRequiredError("at")
	}

	return fmt.Sprintf("%s-%d-%d", prefix, at.UnixMilli(), sequence), nil
}
