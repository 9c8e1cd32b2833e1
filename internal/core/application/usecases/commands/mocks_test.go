package commands_test

import (
	"context"
	"testing"
	"time"

	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/notification"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) Add(ctx context.Context, tx *transaction.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetForUpdate(
	ctx context.Context, id kernel.UUID,
) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumUnapplied(ctx context.Context, orderID kernel.UUID) (kernel.Money, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(kernel.Money), args.Error(1)
}

func (m *MockTransactionRepository) ListUnapplied(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockTransportRepository struct{ mock.Mock }

func (m *MockTransportRepository) Add(ctx context.Context, t *transport.Transport) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransportRepository) Update(ctx context.Context, t *transport.Transport) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransportRepository) Get(ctx context.Context, id kernel.UUID) (*transport.Transport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Transport), args.Error(1)
}

func (m *MockTransportRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transport.Transport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Transport), args.Error(1)
}

func (m *MockTransportRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*transport.Transport, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Transport), args.Error(1)
}

func (m *MockTransportRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockSequenceRepository struct{ mock.Mock }

func (m *MockSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TransactionRepository() ports.TransactionRepository {
	args := m.Called()
	return args.Get(0).(ports.TransactionRepository)
}

func (m *MockUoW) TransportRepository() ports.TransportRepository {
	args := m.Called()
	return args.Get(0).(ports.TransportRepository)
}

func (m *MockUoW) SequenceRepository() ports.SequenceRepository {
	args := m.Called()
	return args.Get(0).(ports.SequenceRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockTransportUoWFactory struct{ mock.Mock }

func (m *MockTransportUoWFactory) Create() commands.TransportUoW {
	args := m.Called()
	return args.Get(0).(commands.TransportUoW)
}

type MockListingCatalog struct{ mock.Mock }

func (m *MockListingCatalog) GetListing(ctx context.Context, id kernel.UUID) (ports.Listing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Listing), args.Error(1)
}

type MockProfileStore struct{ mock.Mock }

func (m *MockProfileStore) GetUser(ctx context.Context, id kernel.UUID) (ports.UserProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.UserProfile), args.Error(1)
}

func (m *MockProfileStore) IncrementBuyerStats(
	ctx context.Context, buyerID kernel.UUID, spent kernel.Money, orders int,
) error {
	args := m.Called(ctx, buyerID, spent, orders)
	return args.Error(0)
}

func (m *MockProfileStore) IncrementSellerStats(
	ctx context.Context, sellerID kernel.UUID, earned kernel.Money, sales int,
) error {
	args := m.Called(ctx, sellerID, earned, sales)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Dispatch(ctx context.Context, notifications ...notification.Notification) {
	m.Called(ctx, notifications)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) OrderCreated(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMetrics) PaymentRecorded(ctx context.Context, method string, amount kernel.Money) {
	m.Called(ctx, method, amount)
}

func (m *MockMetrics) PaymentRedriven(ctx context.Context, outcome string) {
	m.Called(ctx, outcome)
}

func (m *MockMetrics) TransportTransition(ctx context.Context, from string, to string) {
	m.Called(ctx, from, to)
}

// withRepositories lets the handler ask the unit of work for its repositories any number
// of times.
func withRepositories(uow *MockUoW, repos ...any) {
	for _, repo := range repos {
		switch r := repo.(type) {
		case *MockOrderRepository:
			uow.On("OrderRepository").Return(r).Maybe()
		case *MockTransactionRepository:
			uow.On("TransactionRepository").Return(r).Maybe()
		case *MockTransportRepository:
			uow.On("TransportRepository").Return(r).Maybe()
		case *MockSequenceRepository:
			uow.On("SequenceRepository").Return(r).Maybe()
		}
	}
}

// notified matches a Dispatch call whose notifications are addressed to the given users,
// in order.
func notified(recipients ...kernel.UUID) any {
	return mock.MatchedBy(func(ns []notification.Notification) bool {
		if len(ns) != len(recipients) {
			return false
		}
		for i, n := range ns {
			if !n.UserID.IsEqual(recipients[i]) {
				return false
			}
		}
		return true
	})
}

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func money(t *testing.T, v string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(v))
	require.NoError(t, err)
	return m
}

func newActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

type parties struct {
	buyer  kernel.Actor
	seller kernel.Actor
	admin  kernel.Actor
}

func newParties(t *testing.T) parties {
	t.Helper()
	return parties{
		buyer:  newActor(t, kernel.NewUUID(), kernel.RoleBuyer),
		seller: newActor(t, kernel.NewUUID(), kernel.RoleFarmer),
		admin:  newActor(t, kernel.NewUUID(), kernel.RoleAdmin),
	}
}

// pendingOrder is 50 kg at 20 per kg, total 1000.00.
func pendingOrder(t *testing.T, p parties) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "PO-1741944600000-1", p.buyer.ID(), p.seller.ID(), kernel.NewUUID(),
		order.Terms{
			Quantity:     decimal.NewFromInt(50),
			Unit:         order.UnitKg,
			PricePerUnit: money(t, "20"),
		}, testNow)
	require.NoError(t, err)
	return o
}

func acceptedOrder(t *testing.T, p parties) *order.Order {
	t.Helper()
	o := pendingOrder(t, p)
	require.NoError(t, o.Accept(p.seller, "", testNow))
	return o
}

func payment(t *testing.T, o *order.Order, amount string) *transaction.Transaction {
	t.Helper()
	tx, err := transaction.NewPayment(kernel.NewUUID(), "TXN-1741944600000-1", o.ID(), o.BuyerID(), o.SellerID(),
		money(t, amount), transaction.MethodUPI, "UTR1", "", testNow)
	require.NoError(t, err)
	return tx
}

func address(t *testing.T, city string, lat, lng float64) *kernel.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	a, err := kernel.NewAddress("1 Main Rd", city, "KA", "560001", &point)
	require.NoError(t, err)
	return &a
}

func scheduledTransport(t *testing.T, o *order.Order) *transport.Transport {
	t.Helper()
	tr, err := transport.NewTransport(kernel.NewUUID(), o.ID(), o.BuyerID(), o.SellerID(),
		transport.NewCarrier("Ravi Logistics", "+91 98450 00000", "ka-01-ab-1234", "truck", ""),
		*address(t, "Bengaluru", 12.9716, 77.5946), *address(t, "Mysuru", 12.2958, 76.6394),
		testNow.Add(24*time.Hour), nil, "", testNow)
	require.NoError(t, err)
	return tr
}
