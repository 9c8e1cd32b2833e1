package listingrepo_test

import (
	"context"
	"errors"
	"testing"

	"farmtrade/internal/adapters/out/postgres/listingrepo"
	"farmtrade/internal/adapters/out/postgres/pgtest"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ListingCatalogIntegrationTestSuite struct {
	pgtest.Suite
	catalog *listingrepo.GormListingCatalog
}

func (s *ListingCatalogIntegrationTestSuite) SetupTest() {
	s.Suite.SetupTest()
	s.catalog = listingrepo.NewGormListingCatalog(s.DB)
}

func (s *ListingCatalogIntegrationTestSuite) TestGetListing() {
	ctx := context.Background()
	id, sellerID := kernel.NewUUID(), kernel.NewUUID()
	s.Require().NoError(s.DB.Create(&listingrepo.ListingDTO{
		ID:       id.Bytes(),
		SellerID: sellerID.Bytes(),
		CropName: "Tomato",
		Quantity: decimal.RequireFromString("500"),
		Unit:     "kg",
		Price:    decimal.RequireFromString("18.75"),
	}).Error)

	s.Run("known listing", func() {
		got, err := s.catalog.GetListing(ctx, id)
		s.Require().NoError(err)
		s.Equal(sellerID, got.SellerID)
		s.Equal("Tomato", got.CropName)
		s.Equal("kg", got.Unit)
		s.True(decimal.RequireFromString("18.75").Equal(got.Price))
	})

	s.Run("unknown listing", func() {
		_, err := s.catalog.GetListing(ctx, kernel.NewUUID())
		s.Require().Error(err)
		s.True(errors.Is(err, errs.ErrObjectNotFound))
	})
}

func TestListingCatalogIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(ListingCatalogIntegrationTestSuite))
}
