package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type TransportQueriesTestSuite struct {
	fixtures
}

func (s *TransportQueriesTestSuite) TestGetTransport() {
	ctx := context.Background()
	buyer, seller := s.actor(kernel.RoleBuyer), s.actor(kernel.RoleFarmer)
	o := s.order(buyer, seller, s.listing(seller, "Mango"))
	tr := s.transport(o)

	temperature := 8.5
	s.Require().NoError(tr.RecordMonitoring(seller, transport.Reading{
		Temperature: &temperature,
		Photos:      []string{"https://cdn.example/crate.jpg"},
	}, s.base.Add(time.Hour)))
	s.Require().NoError(s.uow.TransportRepository().Update(ctx, tr))

	h := queries.NewGetTransportQueryHandler(s.DB)

	s.Run("by id", func() {
		q, err := queries.NewGetTransportQuery(seller, tr.ID())
		s.Require().NoError(err)

		view, err := h.Handle(ctx, q)
		s.Require().NoError(err)
		s.Equal(o.Number(), view.OrderNumber)
		s.Equal("Ravi Logistics", view.Carrier.Name)
		s.Equal("Bengaluru", view.Pickup.City)
		s.Require().NotNil(view.Pickup.Latitude)
		s.Nil(view.Delivery.Latitude)
		s.Nil(view.Eta)
		s.Equal("scheduled", view.Status)
		s.Equal([]string{"https://cdn.example/crate.jpg"}, view.Photos)
		s.Require().Len(view.Samples, 1)
		s.InDelta(8.5, *view.Samples[0].Temperature, 1e-9)
		s.Nil(view.CurrentLocation)
	})

	s.Run("by order for the buyer", func() {
		q, err := queries.NewGetTransportByOrderQuery(buyer, o.ID())
		s.Require().NoError(err)

		view, err := h.Handle(ctx, q)
		s.Require().NoError(err)
		s.Equal(tr.ID(), view.ID)
	})

	s.Run("order without a leg", func() {
		other := s.order(buyer, seller, kernel.NewUUID())
		q, err := queries.NewGetTransportByOrderQuery(buyer, other.ID())
		s.Require().NoError(err)

		_, err = h.Handle(ctx, q)
		s.True(errors.Is(err, errs.ErrObjectNotFound))
	})

	s.Run("stranger is refused", func() {
		q, err := queries.NewGetTransportQuery(s.actor(kernel.RoleFarmer), tr.ID())
		s.Require().NoError(err)

		_, err = h.Handle(ctx, q)
		s.True(errors.Is(err, errs.ErrUnauthorized))
	})
}

func (s *TransportQueriesTestSuite) TestListTransports() {
	ctx := context.Background()
	buyer, seller, otherSeller := s.actor(kernel.RoleBuyer), s.actor(kernel.RoleFarmer), s.actor(kernel.RoleFarmer)

	scheduled := s.transport(s.order(buyer, seller, kernel.NewUUID()))
	moving := s.transport(s.order(buyer, seller, kernel.NewUUID()))
	s.Require().NoError(moving.ChangeStatus(seller, transport.StatusChange{Status: transport.StatusInTransit}, s.base))
	s.Require().NoError(s.uow.TransportRepository().Update(ctx, moving))
	foreign := s.transport(s.order(buyer, otherSeller, kernel.NewUUID()))

	h := queries.NewListTransportsQueryHandler(s.DB)
	ids := func(actor kernel.Actor, status string) []kernel.UUID {
		q, err := queries.NewListTransportsQuery(actor, status, 0, 10)
		s.Require().NoError(err)
		page, err := h.Handle(ctx, q)
		s.Require().NoError(err)
		s.Equal(int64(len(page.Items)), page.Total)
		out := make([]kernel.UUID, 0, len(page.Items))
		for _, v := range page.Items {
			out = append(out, v.ID)
		}
		return out
	}

	s.Equal([]kernel.UUID{moving.ID(), scheduled.ID()}, ids(seller, ""))
	s.Equal([]kernel.UUID{foreign.ID(), moving.ID(), scheduled.ID()}, ids(buyer, ""))
	s.Equal([]kernel.UUID{moving.ID()}, ids(seller, "in_transit"))
	s.Len(ids(s.actor(kernel.RoleAdmin), ""), 3)

	_, err := queries.NewListTransportsQuery(seller, "lost", 0, 10)
	s.True(errors.Is(err, errs.ErrValueIsInvalid))
}

func TestTransportQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(TransportQueriesTestSuite))
}
