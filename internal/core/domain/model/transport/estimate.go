package transport

import (
	"fmt"
	"math"
	"time"

	"farmtrade/internal/pkg/errs"
)

// Estimate is the travel time computed for a leg at scheduling time.
type Estimate struct {
	distanceKm   float64
	hours        int
	minutes      int
	calculatedAt time.Time
}

// NewEstimate validates and builds an Estimate. Minutes must be below 60.
func NewEstimate(distanceKm float64, hours int, minutes int, calculatedAt time.Time) (Estimate, error) {
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		return Estimate{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm", fmt.Errorf("%v is negative", distanceKm))
	}
	if hours < 0 {
		return Estimate{}, errs.NewValueIsOutOfRangeError("hours", hours, 0, "unbounded")
	}
	if minutes < 0 || minutes > 59 {
		return Estimate{}, errs.NewValueIsOutOfRangeError("minutes", minutes, 0, 59)
	}

	return Estimate{
		distanceKm:   distanceKm,
		hours:        hours,
		minutes:      minutes,
		calculatedAt: calculatedAt,
	}, nil
}

func (e Estimate) DistanceKm() float64     { return e.distanceKm }
func (e Estimate) Hours() int              { return e.hours }
func (e Estimate) Minutes() int            { return e.minutes }
func (e Estimate) CalculatedAt() time.Time { return e.calculatedAt }

// Duration returns hours and minutes as a time.Duration.
func (e Estimate) Duration() time.Duration {
	return time.Duration(e.hours)*time.Hour + time.Duration(e.minutes)*time.Minute
}
