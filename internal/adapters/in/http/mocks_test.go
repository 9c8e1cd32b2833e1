package http_test

import (
	"context"

	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transport"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrder struct{ mock.Mock }

func (m *MockCreateOrder) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAcceptOrder struct{ mock.Mock }

func (m *MockAcceptOrder) Handle(ctx context.Context, cmd commands.AcceptOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRecordPayment struct{ mock.Mock }

func (m *MockRecordPayment) Handle(
	ctx context.Context,
	cmd commands.RecordPaymentCommand,
) (commands.RecordPaymentResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.RecordPaymentResult), args.Error(1)
}

type MockUpdateTransportStatus struct{ mock.Mock }

func (m *MockUpdateTransportStatus) Handle(
	ctx context.Context,
	cmd commands.UpdateTransportStatusCommand,
) (*transport.Transport, error) {
	args := m.Called(ctx, cmd)
	t, _ := args.Get(0).(*transport.Transport)
	return t, args.Error(1)
}

type MockGetOrder struct{ mock.Mock }

func (m *MockGetOrder) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockListOrders struct{ mock.Mock }

func (m *MockListOrders) Handle(
	ctx context.Context,
	query queries.ListOrdersQuery,
) (queries.Page[queries.OrderView], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.Page[queries.OrderView]), args.Error(1)
}

type MockGetTransport struct{ mock.Mock }

func (m *MockGetTransport) Handle(
	ctx context.Context,
	query queries.GetTransportQuery,
) (queries.TransportView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.TransportView), args.Error(1)
}

type MockTransactions struct{ mock.Mock }

func (m *MockTransactions) Get(
	ctx context.Context,
	query queries.GetTransactionQuery,
) (queries.TransactionView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.TransactionView), args.Error(1)
}

func (m *MockTransactions) List(
	ctx context.Context,
	query queries.ListTransactionsQuery,
) (queries.Page[queries.TransactionView], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.Page[queries.TransactionView]), args.Error(1)
}

func (m *MockTransactions) Stats(
	ctx context.Context,
	query queries.TransactionStatsQuery,
) (queries.TransactionStats, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.TransactionStats), args.Error(1)
}
