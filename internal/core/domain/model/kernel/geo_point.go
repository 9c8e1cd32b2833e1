package kernel

import (
	"errors"
	"fmt"
	"math"

	"farmtrade/internal/pkg/errs"
	"farmtrade/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude in degrees.
	LongitudeMax = 180.0

	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when a zero GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable WGS84 coordinate pair expressed in decimal degrees.
// Pickup and delivery addresses carry an optional *GeoPoint; a nil pointer means the
// coordinates are unknown, which is different from the point (0, 0).
//
// Example:
//
//	farm, err := kernel.NewGeoPoint(12.9, 77.6)
//	if err != nil {
//	    // latitude or longitude out of range
//	}
//	fmt.Println(farm) // GeoPoint(12.900000,77.600000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint after checking both coordinates are within range.
//
// Parameters:
//   - latitude: degrees in [LatitudeMin..LatitudeMax]
//   - longitude: degrees in [LongitudeMin..LongitudeMax]
//
// Returns:
//   - GeoPoint: a valid point
//   - error: joined out-of-range errors for every invalid coordinate
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// NewOptionalGeoPoint builds a *GeoPoint from two optional coordinates.
// It returns (nil, nil) unless both are present, so a half-filled address
// is treated as having no coordinates.
func NewOptionalGeoPoint(latitude *float64, longitude *float64) (*GeoPoint, error) {
	if latitude == nil || longitude == nil {
		return nil, nil //nolint:nilnil // absent coordinates are not an error
	}

	p, err := NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate reports whether the point was built by NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two points coordinate by coordinate.
//
// Returns:
//   - bool: true when both latitude and longitude match exactly
//   - error: validation error if either point is a zero value
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle distance to other in kilometres using the
// haversine formula with EarthRadiusKm. The result is not rounded.
//
// Parameters:
//   - other: the destination point
//
// Returns:
//   - float64: distance in kilometres, symmetric and zero for identical points
//   - error: validation error if either point is a zero value
//
// Example:
//
//	a, _ := kernel.NewGeoPoint(0, 0)
//	b, _ := kernel.NewGeoPoint(0, 1)
//	d, _ := a.DistanceKm(b) // ~111.19
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRadians(other.latitude - p.latitude)
	dLng := toRadians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p.latitude))*math.Cos(toRadians(other.latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c, nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
