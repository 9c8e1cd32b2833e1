package kernel

import (
	"strings"

	"farmtrade/internal/pkg/errs"
	"farmtrade/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when a zero Address is used.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress constructor")

// Address is a postal location with optional coordinates. It is used for the
// pickup and delivery ends of a transport leg and for registered user addresses.
//
// Example:
//
//	point, _ := kernel.NewGeoPoint(13.0, 80.2)
//	addr, err := kernel.NewAddress("12 Market Rd", "Chennai", "TN", "600001", &point)
type Address struct { //nolint:recvcheck //using for validation
	street  string
	city    string
	state   string
	zipCode string
	point   *GeoPoint
	guard   guard.ConstructorGuard
}

// NewAddress creates an Address. Text fields are trimmed and may be empty, because a
// registered address is often incomplete; a non-nil point must be a valid GeoPoint.
func NewAddress(street, city, state, zipCode string, point *GeoPoint) (Address, error) {
	a := Address{
		street:  strings.TrimSpace(street),
		city:    strings.TrimSpace(city),
		state:   strings.TrimSpace(state),
		zipCode: strings.TrimSpace(zipCode),
		guard:   guard.NewConstructorGuard(),
	}

	if point != nil {
		if err := point.Validate(); err != nil {
			return Address{}, err
		}
		p := *point
		a.point = &p
	}

	return a, nil
}

// Validate reports whether the address was built by NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string {
	return a.street
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// State returns the state or province.
func (a Address) State() string {
	return a.state
}

// ZipCode returns the postal code.
func (a Address) ZipCode() string {
	return a.zipCode
}

// Point returns a copy of the coordinates, or nil when they are unknown.
func (a Address) Point() *GeoPoint {
	if a.point == nil {
		return nil
	}
	p := *a.point
	return &p
}

// HasCoordinates reports whether the address carries coordinates.
func (a Address) HasCoordinates() bool {
	return a.point != nil
}
