package services_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/services"
	"farmtrade/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calculatedAt = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func point(t *testing.T, lat, lng float64) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return &p
}

func TestNewEtaEstimator(t *testing.T) {
	e, err := services.NewEtaEstimator(services.DefaultAverageSpeedKmh)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, e.SpeedKmh(), 0)

	for _, speed := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err = services.NewEtaEstimator(speed)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid), "speed %v", speed)
	}
}

func TestEtaEstimator_Estimate(t *testing.T) {
	estimator, err := services.NewEtaEstimator(services.DefaultAverageSpeedKmh)
	require.NoError(t, err)

	t.Run("should estimate one degree along the equator", func(t *testing.T) {
		eta := estimator.Estimate(point(t, 0, 0), point(t, 0, 1), calculatedAt)

		require.NotNil(t, eta)
		assert.InDelta(t, 111.19, eta.DistanceKm(), 0.0001)
		assert.Equal(t, 2, eta.Hours())
		assert.Equal(t, 13, eta.Minutes())
		assert.Equal(t, calculatedAt, eta.CalculatedAt())
	})

	t.Run("should be deterministic", func(t *testing.T) {
		first := estimator.Estimate(point(t, 0, 0), point(t, 0, 1), calculatedAt)
		second := estimator.Estimate(point(t, 0, 0), point(t, 0, 1), calculatedAt)

		assert.Equal(t, first, second)
	})

	t.Run("should estimate a farm to market leg", func(t *testing.T) {
		eta := estimator.Estimate(point(t, 12.9, 77.6), point(t, 13.0, 80.2), calculatedAt)

		require.NotNil(t, eta)
		assert.InDelta(t, 281.97, eta.DistanceKm(), 0.0001)
		assert.GreaterOrEqual(t, eta.Hours(), 5)
		assert.Less(t, eta.Hours(), 6)
		assert.Equal(t, 38, eta.Minutes())
	})

	t.Run("should treat zero coordinates as known", func(t *testing.T) {
		eta := estimator.Estimate(point(t, 0, 0), point(t, 0, 0), calculatedAt)

		require.NotNil(t, eta)
		assert.Zero(t, eta.DistanceKm())
		assert.Zero(t, eta.Hours())
		assert.Zero(t, eta.Minutes())
	})

	t.Run("should be unavailable without both points", func(t *testing.T) {
		assert.Nil(t, estimator.Estimate(nil, point(t, 0, 1), calculatedAt))
		assert.Nil(t, estimator.Estimate(point(t, 0, 0), nil, calculatedAt))
		assert.Nil(t, estimator.Estimate(nil, nil, calculatedAt))
		assert.Nil(t, estimator.Estimate(&kernel.GeoPoint{}, point(t, 0, 1), calculatedAt))
	})

	t.Run("should roll sixty minutes into the next hour", func(t *testing.T) {
		fast, err := services.NewEtaEstimator(111.2)
		require.NoError(t, err)

		eta := fast.Estimate(point(t, 0, 0), point(t, 0, 1), calculatedAt)

		require.NotNil(t, eta)
		assert.Equal(t, 1, eta.Hours())
		assert.Equal(t, 0, eta.Minutes())
	})
}
