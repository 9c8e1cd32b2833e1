package services

import (
	"fmt"
	"math"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/errs"
)

// DefaultAverageSpeedKmh is the assumed average speed of rural produce transport.
const DefaultAverageSpeedKmh = 50.0

// EtaEstimator turns a pickup and a delivery point into a travel time estimate using
// the straight-line (haversine) distance and a constant average speed.
//
// Business rules:
//   - No estimate is produced when either point is missing
//   - Distance is rounded to 2 decimal places
//   - Hours are the whole part of distance / speed; minutes are the rounded remainder
//   - A remainder that rounds to 60 minutes becomes one more hour
//
// Example usage:
//
//	estimator, _ := services.NewEtaEstimator(services.DefaultAverageSpeedKmh)
//	farm, _ := kernel.NewGeoPoint(12.9, 77.6)
//	market, _ := kernel.NewGeoPoint(13.0, 80.2)
//
//	eta := estimator.Estimate(&farm, &market, time.Now())
//	// eta.DistanceKm() == 281.97, eta.Hours() == 5, eta.Minutes() == 38
type EtaEstimator struct {
	speedKmh float64
}

// NewEtaEstimator creates an estimator for the given average speed.
//
// Returns:
//   - EtaEstimator: ready to use, safe for concurrent use
//   - error: ValueIsInvalidError when speed is not a positive number
func NewEtaEstimator(speedKmh float64) (EtaEstimator, error) {
	if math.IsNaN(speedKmh) || math.IsInf(speedKmh, 0) || speedKmh <= 0 {
		return EtaEstimator{}, errs.NewValueIsInvalidErrorWithCause(
			"averageSpeedKmh", fmt.Errorf("%v is not greater than 0", speedKmh))
	}
	return EtaEstimator{speedKmh: speedKmh}, nil
}

// SpeedKmh returns the configured average speed.
func (e EtaEstimator) SpeedKmh() float64 {
	return e.speedKmh
}

// Estimate computes the travel time between two optional points.
//
// Parameters:
//   - pickup, delivery: coordinates, nil when unknown
//   - at: stamped as the calculation time
//
// Returns:
//   - *transport.Estimate: nil when either point is missing or invalid
func (e EtaEstimator) Estimate(pickup, delivery *kernel.GeoPoint, at time.Time) *transport.Estimate {
	if pickup == nil || delivery == nil || e.speedKmh <= 0 {
		return nil
	}

	distance, err := pickup.DistanceKm(*delivery)
	if err != nil {
		return nil
	}

	totalHours := distance / e.speedKmh
	hours := math.Floor(totalHours)
	minutes := math.Round((totalHours - hours) * 60)
	if minutes >= 60 {
		hours++
		minutes = 0
	}

	estimate, err := transport.NewEstimate(math.Round(distance*100)/100, int(hours), int(minutes), at)
	if err != nil {
		return nil
	}
	return &estimate
}
