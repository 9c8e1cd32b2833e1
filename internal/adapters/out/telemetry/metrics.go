package telemetry

import (
	"context"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "farmtrade/fulfillment"

var _ ports.FulfillmentMetrics = (*FulfillmentMetrics)(nil)

type FulfillmentMetrics struct {
	ordersCreated        metric.Int64Counter
	paymentsRecorded     metric.Int64Counter
	paymentsAmount       metric.Float64Counter
	paymentsRedriven     metric.Int64Counter
	transportTransitions metric.Int64Counter
}

// NewFulfillmentMetrics registers the fulfillment instruments on a meter from provider.
func NewFulfillmentMetrics(provider metric.MeterProvider) (*FulfillmentMetrics, error) {
	meter := provider.Meter(meterName)

	ordersCreated, err := meter.Int64Counter("orders.created",
		metric.WithDescription("Orders placed by buyers"))
	if err != nil {
		return nil, err
	}
	paymentsRecorded, err := meter.Int64Counter("payments.recorded",
		metric.WithDescription("Payments written to the ledger"))
	if err != nil {
		return nil, err
	}
	paymentsAmount, err := meter.Float64Counter("payments.amount",
		metric.WithDescription("Sum of recorded payment amounts"))
	if err != nil {
		return nil, err
	}
	paymentsRedriven, err := meter.Int64Counter("payments.redriven",
		metric.WithDescription("Payments applied by the re-drive job, by outcome"))
	if err != nil {
		return nil, err
	}
	transportTransitions, err := meter.Int64Counter("transport.transitions",
		metric.WithDescription("Transport status changes"))
	if err != nil {
		return nil, err
	}

	return &FulfillmentMetrics{
		ordersCreated:        ordersCreated,
		paymentsRecorded:     paymentsRecorded,
		paymentsAmount:       paymentsAmount,
		paymentsRedriven:     paymentsRedriven,
		transportTransitions: transportTransitions,
	}, nil
}

func (m *FulfillmentMetrics) OrderCreated(ctx context.Context) {
	m.ordersCreated.Add(ctx, 1)
}

func (m *FulfillmentMetrics) PaymentRecorded(ctx context.Context, method string, amount kernel.Money) {
	attrs := metric.WithAttributes(attribute.String("method", method))
	m.paymentsRecorded.Add(ctx, 1, attrs)
	m.paymentsAmount.Add(ctx, amount.Amount().InexactFloat64(), attrs)
}

func (m *FulfillmentMetrics) PaymentRedriven(ctx context.Context, outcome string) {
	m.paymentsRedriven.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// TransportTransition counts a status change; from is empty when a leg is scheduled.
func (m *FulfillmentMetrics) TransportTransition(ctx context.Context, from string, to string) {
	if from == "" {
		from = "none"
	}
	m.transportTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}
