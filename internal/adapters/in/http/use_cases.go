package http

import (
	"context"

	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transport"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	AcceptOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptOrderCommand) (*order.Order, error)
	}
	RejectOrderHandler interface {
		Handle(ctx context.Context, cmd commands.RejectOrderCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	RecordPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.RecordPaymentCommand) (commands.RecordPaymentResult, error)
	}
	ApplyPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ApplyPaymentCommand) (commands.ApplyPaymentResult, error)
	}
	ScheduleTransportHandler interface {
		Handle(ctx context.Context, cmd commands.ScheduleTransportCommand) (*transport.Transport, error)
	}
	UpdateTransportStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateTransportStatusCommand) (*transport.Transport, error)
	}
	RecordMonitoringHandler interface {
		Handle(ctx context.Context, cmd commands.RecordMonitoringCommand) (*transport.Transport, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.Page[queries.OrderView], error)
	}
	GetTransportHandler interface {
		Handle(ctx context.Context, query queries.GetTransportQuery) (queries.TransportView, error)
	}
	ListTransportsHandler interface {
		Handle(ctx context.Context, query queries.ListTransportsQuery) (queries.Page[queries.TransportView], error)
	}
	TransactionQueries interface {
		Get(ctx context.Context, query queries.GetTransactionQuery) (queries.TransactionView, error)
		List(ctx context.Context, query queries.ListTransactionsQuery) (queries.Page[queries.TransactionView], error)
		Stats(ctx context.Context, query queries.TransactionStatsQuery) (queries.TransactionStats, error)
	}
)

// UseCases holds the application handlers the server exposes.
type UseCases struct {
	CreateOrder           CreateOrderHandler
	UpdateOrder           UpdateOrderHandler
	AcceptOrder           AcceptOrderHandler
	RejectOrder           RejectOrderHandler
	CancelOrder           CancelOrderHandler
	RecordPayment         RecordPaymentHandler
	ApplyPayment          ApplyPaymentHandler
	ScheduleTransport     ScheduleTransportHandler
	UpdateTransportStatus UpdateTransportStatusHandler
	RecordMonitoring      RecordMonitoringHandler

	GetOrder       GetOrderHandler
	ListOrders     ListOrdersHandler
	GetTransport   GetTransportHandler
	ListTransports ListTransportsHandler
	Transactions   TransactionQueries
}
