package ports

import (
	"context"

	"farmtrade/internal/core/domain/model/kernel"
)

// FulfillmentMetrics records business counters.
type FulfillmentMetrics interface {
	OrderCreated(ctx context.Context)
	PaymentRecorded(ctx context.Context, method string, amount kernel.Money)
	PaymentRedriven(ctx context.Context, outcome string)
	TransportTransition(ctx context.Context, from string, to string)
}
