package queries_test

import (
	"context"
	"fmt"
	"time"

	postgres_adapter "farmtrade/internal/adapters/out/postgres"
	"farmtrade/internal/adapters/out/postgres/listingrepo"
	"farmtrade/internal/adapters/out/postgres/pgtest"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/core/ports"

	"github.com/shopspring/decimal"
)

// fixtures seeds the database through the real repositories.
type fixtures struct {
	pgtest.Suite
	uow  ports.UnitOfWork
	seq  int
	base time.Time
}

func (f *fixtures) SetupTest() {
	f.Suite.SetupTest()
	f.uow = postgres_adapter.NewGormUnitOfWorkFactory(f.DB).Create()
	f.seq = 0
	f.base = pgtest.Now()
}

func (f *fixtures) actor(role kernel.Role) kernel.Actor {
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	f.Require().NoError(err)
	return a
}

func (f *fixtures) money(v string) kernel.Money {
	m, err := kernel.NewMoney(decimal.RequireFromString(v))
	f.Require().NoError(err)
	return m
}

func (f *fixtures) listing(seller kernel.Actor, crop string) kernel.UUID {
	id := kernel.NewUUID()
	f.Require().NoError(f.DB.Create(&listingrepo.ListingDTO{
		ID:       id.Bytes(),
		SellerID: seller.ID().Bytes(),
		CropName: crop,
		Quantity: decimal.NewFromInt(1000),
		Unit:     "kg",
		Price:    decimal.NewFromInt(20),
	}).Error)
	return id
}

// order creates a pending 50 kg x 20 order. Each call is one minute newer than the last.
func (f *fixtures) order(buyer, seller kernel.Actor, listingID kernel.UUID) *order.Order {
	f.seq++
	o, err := order.NewOrder(kernel.NewUUID(), fmt.Sprintf("PO-1741944600000-%d", f.seq),
		buyer.ID(), seller.ID(), listingID,
		order.Terms{Quantity: decimal.NewFromInt(50), Unit: order.UnitKg, PricePerUnit: f.money("20")},
		f.base.Add(time.Duration(f.seq)*time.Minute))
	f.Require().NoError(err)
	f.Require().NoError(f.uow.OrderRepository().Add(context.Background(), o))
	return o
}

func (f *fixtures) save(o *order.Order) {
	f.Require().NoError(f.uow.OrderRepository().Update(context.Background(), o))
}

func (f *fixtures) payment(o *order.Order, amount string) *transaction.Transaction {
	f.seq++
	amt, err := kernel.NewPositiveMoney(decimal.RequireFromString(amount))
	f.Require().NoError(err)
	tx, err := transaction.NewPayment(kernel.NewUUID(), fmt.Sprintf("TXN-1741944600000-%d", f.seq),
		o.ID(), o.BuyerID(), o.SellerID(), amt, transaction.MethodUPI, "UTR", "",
		f.base.Add(time.Duration(f.seq)*time.Minute))
	f.Require().NoError(err)
	f.Require().NoError(f.uow.TransactionRepository().Add(context.Background(), tx))
	return tx
}

func (f *fixtures) transport(o *order.Order) *transport.Transport {
	f.seq++
	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	f.Require().NoError(err)
	pickup, err := kernel.NewAddress("12 Farm Rd", "Bengaluru", "KA", "560001", &point)
	f.Require().NoError(err)
	delivery, err := kernel.NewAddress("4 Market St", "Mysuru", "KA", "570001", nil)
	f.Require().NoError(err)

	t, err := transport.NewTransport(kernel.NewUUID(), o.ID(), o.BuyerID(), o.SellerID(),
		transport.NewCarrier("Ravi Logistics", "+91 98450 00000", "KA-01-AB-1234", "truck", ""),
		pickup, delivery, f.base.Add(24*time.Hour), nil, "",
		f.base.Add(time.Duration(f.seq)*time.Minute))
	f.Require().NoError(err)
	f.Require().NoError(f.uow.TransportRepository().Add(context.Background(), t))
	return t
}
