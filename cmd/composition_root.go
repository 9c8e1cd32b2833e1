package cmd

import (
	"context"
	"errors"
	"fmt"

	httpadapter "farmtrade/internal/adapters/in/http"
	"farmtrade/internal/adapters/out/catalog"
	"farmtrade/internal/adapters/out/kafka"
	"farmtrade/internal/adapters/out/notify"
	"farmtrade/internal/adapters/out/postgres"
	"farmtrade/internal/adapters/out/postgres/listingrepo"
	"farmtrade/internal/adapters/out/postgres/notificationrepo"
	"farmtrade/internal/adapters/out/postgres/profilerepo"
	"farmtrade/internal/adapters/out/telemetry"
	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/services"
	"farmtrade/internal/core/ports"
	"farmtrade/internal/jobs"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const serviceName = "farmtrade"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *logrus.Logger

	listings  ports.ListingCatalog
	profiles  ports.ProfileStore
	notifier  ports.NotificationDispatcher
	metrics   ports.FulfillmentMetrics
	estimator services.EtaEstimator

	closers []func(context.Context) error
}

// NewCompositionRoot builds the shared collaborators. Kafka, the remote listing catalog
// and the OTLP exporter are only wired when configured.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *logrus.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		profiles:   profilerepo.NewGormProfileStore(gormDB),
	}

	speed, err := cfg.AverageSpeedKmh()
	if err != nil {
		return nil, err
	}
	if c.estimator, err = services.NewEtaEstimator(speed); err != nil {
		return nil, err
	}

	if cfg.ListingCatalogURL != "" {
		c.listings = catalog.NewHTTPListingCatalog(cfg.ListingCatalogURL)
	} else {
		c.listings = listingrepo.NewGormListingCatalog(gormDB)
	}

	sinks := []ports.NotificationSink{notificationrepo.NewGormSink(gormDB)}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		producer, err := kafka.NewSyncProducer(brokers)
		if err != nil {
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		sink := kafka.NewNotificationSink(producer, cfg.KafkaNotificationsTopic, logger)
		c.closers = append(c.closers, func(context.Context) error { return sink.Close() })
		sinks = append(sinks, sink)
	}
	c.notifier = notify.NewDispatcher(logger, sinks...)

	provider, shutdown, err := telemetry.NewMeterProvider(ctx, serviceName, cfg.OtelExporterEndpoint)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, shutdown)
	if c.metrics, err = telemetry.NewFulfillmentMetrics(provider); err != nil {
		return nil, err
	}

	return c, nil
}

// Close releases the Kafka producer and flushes metrics.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i](ctx))
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) transportUoWFactory() commands.TransportUoWFactory {
	return FuncTransportUoWFactory(func() commands.TransportUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.listings, c.profiles, c.notifier, c.metrics)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	h := commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() *commands.AcceptOrderCommandHandler {
	h := commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.notifier)
	return &h
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() *commands.RejectOrderCommandHandler {
	h := commands.NewRejectOrderCommandHandler(c.orderUoWFactory(), c.notifier)
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier)
	return &h
}

func (c *CompositionRoot) CreateApplyPaymentCommandHandler() *commands.ApplyPaymentCommandHandler {
	return commands.NewApplyPaymentCommandHandler(c.paymentUoWFactory(), c.profiles, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() *commands.RecordPaymentCommandHandler {
	h := commands.NewRecordPaymentCommandHandler(
		c.paymentUoWFactory(), c.CreateApplyPaymentCommandHandler(), c.metrics, c.logger)
	return &h
}

func (c *CompositionRoot) CreateRedrivePaymentsCommandHandler() *commands.RedrivePaymentsCommandHandler {
	h := commands.NewRedrivePaymentsCommandHandler(
		c.paymentUoWFactory(), c.CreateApplyPaymentCommandHandler(), c.metrics, c.logger)
	return &h
}

func (c *CompositionRoot) CreateScheduleTransportCommandHandler() *commands.ScheduleTransportCommandHandler {
	h := commands.NewScheduleTransportCommandHandler(
		c.transportUoWFactory(), c.profiles, c.estimator, c.notifier, c.metrics)
	return &h
}

func (c *CompositionRoot) CreateUpdateTransportStatusCommandHandler() *commands.UpdateTransportStatusCommandHandler {
	h := commands.NewUpdateTransportStatusCommandHandler(c.transportUoWFactory(), c.notifier, c.metrics)
	return &h
}

func (c *CompositionRoot) CreateRecordMonitoringCommandHandler() *commands.RecordMonitoringCommandHandler {
	h := commands.NewRecordMonitoringCommandHandler(c.transportUoWFactory())
	return &h
}

// UseCases wires every handler the HTTP server exposes.
func (c *CompositionRoot) UseCases() httpadapter.UseCases {
	return httpadapter.UseCases{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		UpdateOrder:           c.CreateUpdateOrderCommandHandler(),
		AcceptOrder:           c.CreateAcceptOrderCommandHandler(),
		RejectOrder:           c.CreateRejectOrderCommandHandler(),
		CancelOrder:           c.CreateCancelOrderCommandHandler(),
		RecordPayment:         c.CreateRecordPaymentCommandHandler(),
		ApplyPayment:          c.CreateApplyPaymentCommandHandler(),
		ScheduleTransport:     c.CreateScheduleTransportCommandHandler(),
		UpdateTransportStatus: c.CreateUpdateTransportStatusCommandHandler(),
		RecordMonitoring:      c.CreateRecordMonitoringCommandHandler(),

		GetOrder:       queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:     queries.NewListOrdersQueryHandler(c.gormDB),
		GetTransport:   queries.NewGetTransportQueryHandler(c.gormDB),
		ListTransports: queries.NewListTransportsQueryHandler(c.gormDB),
		Transactions:   queries.NewTransactionQueriesHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	redrive := jobs.NewPaymentRedriveJob(
		c.CreateRedrivePaymentsCommandHandler(), c.cfg.PaymentRedriveSchedule, jobs.DefaultRedriveBatch, c.logger)
	return jobs.NewJobManager(redrive)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncTransportUoWFactory func() commands.TransportUoW

func (f FuncTransportUoWFactory) Create() commands.TransportUoW {
	return f()
}
