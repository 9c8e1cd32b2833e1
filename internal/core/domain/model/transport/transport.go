package transport

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/pkg/errs"
)

var (
	// ErrTransportIsNotConstructed is returned when a Transport was not created through
	// NewTransport or RestoreTransport.
	ErrTransportIsNotConstructed = errors.New("Transport must be created via NewTransport constructor")
)

// Transport is the single transport leg of an order, from the seller's pickup address
// to the buyer's delivery address.
//
// Transport follows these invariants:
//   - exactly one Transport exists per order
//   - estimatedDeliveryDate = pickupDate + estimate, or pickupDate when no estimate exists
//   - actualDeliveryDate is set iff the status is delivered
//   - once departed (first in_transit), a delayed leg can only resume in transit
//   - monitoring samples are only ever appended
type Transport struct {
	id       kernel.UUID
	orderID  kernel.UUID
	buyerID  kernel.UUID
	sellerID kernel.UUID

	carrier  Carrier
	pickup   kernel.Address
	delivery kernel.Address

	pickupDate            time.Time
	estimatedDeliveryDate time.Time
	estimate              *Estimate
	actualDeliveryDate    *time.Time
	departedAt            *time.Time

	status          Status
	currentLocation *LocationSample

	temperature *float64
	humidity    *float64
	photos      []string
	samples     []MonitoringSample

	signature string
	notes     string
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewTransport creates a scheduled transport leg for an order.
//
// Parameters:
//   - id: transport identifier
//   - orderID, buyerID, sellerID: the order and its parties
//   - carrier: who moves the produce
//   - pickup, delivery: addresses; coordinates are optional
//   - pickupDate: when the produce leaves the farm
//   - estimate: travel time, nil when coordinates were not available
//   - notes: free text
//   - at: creation instant
//
// Example:
//
//	eta := estimator.Estimate(pickup.Point(), delivery.Point())
//	t, err := transport.NewTransport(kernel.NewUUID(), o.ID(), o.BuyerID(), o.SellerID(),
//	    carrier, pickup, delivery, pickupDate, eta, "", time.Now())
//	// t.EstimatedDeliveryDate() == pickupDate.Add(eta.Duration())
func NewTransport(
	id kernel.UUID,
	orderID kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	carrier Carrier,
	pickup kernel.Address,
	delivery kernel.Address,
	pickupDate time.Time,
	estimate *Estimate,
	notes string,
	at time.Time,
) (*Transport, error) {
	t := &Transport{
		carrier:       carrier,
		status:        StatusScheduled,
		notes:         strings.TrimSpace(notes),
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setIDs(id, orderID, buyerID, sellerID),
		t.setAddresses(pickup, delivery),
		t.setSchedule(pickupDate, estimate),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// State is the persisted state of a transport leg.
type State struct {
	ID                    kernel.UUID
	OrderID               kernel.UUID
	BuyerID               kernel.UUID
	SellerID              kernel.UUID
	Carrier               Carrier
	Pickup                kernel.Address
	Delivery              kernel.Address
	PickupDate            time.Time
	EstimatedDeliveryDate time.Time
	Estimate              *Estimate
	ActualDeliveryDate    *time.Time
	DepartedAt            *time.Time
	Status                Status
	CurrentLocation       *LocationSample
	Temperature           *float64
	Humidity              *float64
	Photos                []string
	Samples               []MonitoringSample
	Signature             string
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RestoreTransport rebuilds a transport leg from persisted state. The stored estimated
// delivery date is kept as is.
func RestoreTransport(s State) (*Transport, error) {
	t := &Transport{
		carrier:               s.Carrier,
		pickupDate:            s.PickupDate,
		estimatedDeliveryDate: s.EstimatedDeliveryDate,
		estimate:              s.Estimate,
		actualDeliveryDate:    s.ActualDeliveryDate,
		departedAt:            s.DepartedAt,
		currentLocation:       s.CurrentLocation,
		temperature:           s.Temperature,
		humidity:              s.Humidity,
		photos:                slices.Clone(s.Photos),
		samples:               slices.Clone(s.Samples),
		signature:             s.Signature,
		notes:                 s.Notes,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		isConstructed:         true,
	}

	status, statusErr := ParseStatus(string(s.Status))
	if err := errors.Join(
		t.setIDs(s.ID, s.OrderID, s.BuyerID, s.SellerID),
		t.setAddresses(s.Pickup, s.Delivery),
		statusErr,
	); err != nil {
		return nil, err
	}
	t.status = status

	return t, nil
}

// Validate ensures the Transport was properly constructed.
func (t *Transport) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransportIsNotConstructed
	}
	return nil
}

func (t *Transport) ID() kernel.UUID                  { return t.id }
func (t *Transport) OrderID() kernel.UUID             { return t.orderID }
func (t *Transport) BuyerID() kernel.UUID             { return t.buyerID }
func (t *Transport) SellerID() kernel.UUID            { return t.sellerID }
func (t *Transport) Carrier() Carrier                 { return t.carrier }
func (t *Transport) Pickup() kernel.Address           { return t.pickup }
func (t *Transport) Delivery() kernel.Address         { return t.delivery }
func (t *Transport) PickupDate() time.Time            { return t.pickupDate }
func (t *Transport) EstimatedDeliveryDate() time.Time { return t.estimatedDeliveryDate }
func (t *Transport) Estimate() *Estimate              { return t.estimate }
func (t *Transport) ActualDeliveryDate() *time.Time   { return t.actualDeliveryDate }
func (t *Transport) DepartedAt() *time.Time           { return t.departedAt }
func (t *Transport) Status() Status                   { return t.status }
func (t *Transport) CurrentLocation() *LocationSample { return t.currentLocation }
func (t *Transport) Temperature() *float64            { return t.temperature }
func (t *Transport) Humidity() *float64               { return t.humidity }
func (t *Transport) Photos() []string                 { return slices.Clone(t.photos) }
func (t *Transport) Samples() []MonitoringSample      { return slices.Clone(t.samples) }
func (t *Transport) Signature() string                { return t.signature }
func (t *Transport) Notes() string                    { return t.notes }
func (t *Transport) CreatedAt() time.Time             { return t.createdAt }
func (t *Transport) UpdatedAt() time.Time             { return t.updatedAt }

// CanBeReadBy reports whether the actor is a party of the leg or an admin.
func (t *Transport) CanBeReadBy(actor kernel.Actor) bool {
	return actor.IsAdmin() || actor.Is(t.buyerID) || actor.Is(t.sellerID)
}

// StatusChange describes a manual status update by the seller.
type StatusChange struct {
	Status    Status
	Location  *kernel.GeoPoint
	Notes     string
	Signature string
}

// ChangeStatus moves the leg to change.Status on behalf of the seller.
//
// Returns:
//   - UnauthorizedError when the actor is not the seller
//   - InvalidTransitionError when the transition table refuses the move, or when a leg
//     that already departed would go back to scheduled
//
// A location, when given, becomes the current location. Notes replace the previous
// notes. Delivered stamps actualDeliveryDate with at.
func (t *Transport) ChangeStatus(actor kernel.Actor, change StatusChange, at time.Time) error {
	if !actor.Is(t.sellerID) {
		return errs.NewUnauthorizedError(actor.ID(), "update transport "+t.id.String())
	}

	next, err := t.status.TransitionTo(change.Status)
	if err != nil {
		return err
	}
	if next == StatusScheduled && t.departedAt != nil {
		return errs.NewInvalidTransitionError("transport", t.status, next)
	}

	if change.Location != nil {
		if err = change.Location.Validate(); err != nil {
			return err
		}
		t.currentLocation = &LocationSample{Point: *change.Location, RecordedAt: at}
	}
	if notes := strings.TrimSpace(change.Notes); notes != "" {
		t.notes = notes
	}
	if next == StatusInTransit && t.departedAt == nil {
		t.departedAt = &at
	}
	if next == StatusDelivered {
		t.actualDeliveryDate = &at
		t.signature = strings.TrimSpace(change.Signature)
	}

	t.status = next
	t.updatedAt = at
	return nil
}

// Reading is an environmental report by the seller. Nil values were not measured.
type Reading struct {
	Temperature *float64
	Humidity    *float64
	Photos      []string
}

// RecordMonitoring stores a reading without touching the status. Measured values become
// the latest values and are appended to the sample history; photos are appended.
func (t *Transport) RecordMonitoring(actor kernel.Actor, reading Reading, at time.Time) error {
	if !actor.Is(t.sellerID) {
		return errs.NewUnauthorizedError(actor.ID(), "monitor transport "+t.id.String())
	}
	if reading.Temperature == nil && reading.Humidity == nil && len(reading.Photos) == 0 {
		return errs.NewValueIsRequiredError("temperature, humidity or photos")
	}
	if reading.Temperature != nil && (math.IsNaN(*reading.Temperature) || math.IsInf(*reading.Temperature, 0)) {
		return errs.NewValueIsInvalidErrorWithCause("temperature", fmt.Errorf("%v is not a number", *reading.Temperature))
	}
	if reading.Humidity != nil && (math.IsNaN(*reading.Humidity) || *reading.Humidity < 0 || *reading.Humidity > 100) {
		return errs.NewValueIsOutOfRangeError("humidity", *reading.Humidity, 0, 100)
	}

	for _, photo := range reading.Photos {
		if photo = strings.TrimSpace(photo); photo != "" {
			t.photos = append(t.photos, photo)
		}
	}

	if reading.Temperature != nil || reading.Humidity != nil {
		sample := MonitoringSample{RecordedAt: at}
		if reading.Temperature != nil {
			v := *reading.Temperature
			t.temperature = &v
			sample.Temperature = copyFloat(&v)
		}
		if reading.Humidity != nil {
			v := *reading.Humidity
			t.humidity = &v
			sample.Humidity = copyFloat(&v)
		}
		t.samples = append(t.samples, sample)
	}

	t.updatedAt = at
	return nil
}

func (t *Transport) setIDs(id, orderID, buyerID, sellerID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), buyerID.Validate(), sellerID.Validate()); err != nil {
		return err
	}
	t.id = id
	t.orderID = orderID
	t.buyerID = buyerID
	t.sellerID = sellerID
	return nil
}

func (t *Transport) setAddresses(pickup, delivery kernel.Address) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	t.pickup = pickup
	t.delivery = delivery
	return nil
}

func (t *Transport) setSchedule(pickupDate time.Time, estimate *Estimate) error {
	if pickupDate.IsZero() {
		return errs.NewValueIsRequiredError("pickupDate")
	}

	t.pickupDate = pickupDate
	t.estimatedDeliveryDate = pickupDate
	if estimate != nil {
		e := *estimate
		t.estimate = &e
		t.estimatedDeliveryDate = pickupDate.Add(e.Duration())
	}
	return nil
}

func copyFloat(v *float64) *float64 {
	c := *v
	return &c
}
