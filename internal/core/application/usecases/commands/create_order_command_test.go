package commands_test

import (
	"errors"
	"testing"

	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	p := newParties(t)
	sellerID, listingID := p.seller.ID(), kernel.NewUUID()

	t.Run("should build command with defaults", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(p.buyer, sellerID, listingID,
			decimal.NewFromInt(50), "", decimal.NewFromInt(20), order.Quality{Description: "Grade A"}, "before noon")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, order.UnitKg, cmd.Unit())
		assert.Equal(t, "20.00", cmd.PricePerUnit().String())
		assert.True(t, cmd.Quantity().Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "Grade A", cmd.Quality().Description)
		assert.Equal(t, "before noon", cmd.Notes())
		assert.True(t, cmd.SellerID().IsEqual(sellerID))
		assert.True(t, cmd.ListingID().IsEqual(listingID))
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		testCases := []struct {
			name     string
			quantity decimal.Decimal
			unit     string
			price    decimal.Decimal
			sentinel error
		}{
			{"zero quantity", decimal.Zero, "kg", decimal.NewFromInt(20), errs.ErrValueIsInvalid},
			{"negative quantity", decimal.NewFromInt(-1), "kg", decimal.NewFromInt(20), errs.ErrValueIsInvalid},
			{"unknown unit", decimal.NewFromInt(1), "lb", decimal.NewFromInt(20), errs.ErrValueIsInvalid},
			{"zero price", decimal.NewFromInt(1), "kg", decimal.Zero, errs.ErrValueIsInvalid},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := commands.NewCreateOrderCommand(p.buyer, sellerID, listingID,
					tc.quantity, tc.unit, tc.price, order.Quality{}, "")

				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.sentinel), err.Error())
			})
		}
	})

	t.Run("should reject missing identifiers", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(p.buyer, kernel.UUID{}, kernel.UUID{},
			decimal.NewFromInt(1), "kg", decimal.NewFromInt(1), order.Quality{}, "")
		require.Error(t, err)
	})

	t.Run("zero value command is not constructed", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
