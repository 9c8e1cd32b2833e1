package transaction

import (
	"fmt"

	"farmtrade/internal/pkg/errs"
)

// Status is the processing state of a transaction. Payments recorded by the marketplace
// are created completed; the other statuses come from corrections.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// ParseStatus converts a name into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid transaction status", s))
	}
}

func (s Status) String() string {
	return string(s)
}
