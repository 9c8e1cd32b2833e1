package kernel_test

import (
	"testing"

	"farmtrade/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should trim fields and copy the point", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(13.0, 80.2)

		addr, err := kernel.NewAddress(" 12 Market Rd ", "Chennai", "TN", "600001", &point)

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "12 Market Rd", addr.Street())
		assert.Equal(t, "Chennai", addr.City())
		assert.Equal(t, "TN", addr.State())
		assert.Equal(t, "600001", addr.ZipCode())
		assert.True(t, addr.HasCoordinates())
		assert.Equal(t, point, *addr.Point())
	})

	t.Run("should allow missing coordinates", func(t *testing.T) {
		addr, err := kernel.NewAddress("", "Pune", "", "", nil)

		require.NoError(t, err)
		assert.False(t, addr.HasCoordinates())
		assert.Nil(t, addr.Point())
	})

	t.Run("should reject a zero value point", func(t *testing.T) {
		_, err := kernel.NewAddress("x", "y", "z", "1", &kernel.GeoPoint{})

		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
	})
}
