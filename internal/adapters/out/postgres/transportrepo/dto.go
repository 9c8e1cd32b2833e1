// Package transportrepo persists transport legs.
package transportrepo

import (
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// TransportDTO is the "transports" row. The unique index on order_id enforces one leg
// per order even when two schedule requests race.
type TransportDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BuyerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Carrier  CarrierDTO `gorm:"embedded;embeddedPrefix:transporter_"`
	Pickup   AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	PickupDate            time.Time `gorm:"not null"`
	EstimatedDeliveryDate time.Time `gorm:"not null"`
	ActualDeliveryDate    *time.Time
	DepartedAt            *time.Time

	EtaDistanceKm   *float64
	EtaHours        *int
	EtaMinutes      *int
	EtaCalculatedAt *time.Time

	Status            string `gorm:"size:16;not null;index"`
	CurrentLatitude   *float64
	CurrentLongitude  *float64
	CurrentLocationAt *time.Time

	Temperature *float64
	Humidity    *float64
	Photos      pq.StringArray                 `gorm:"type:text[]"`
	Samples     datatypes.JSONSlice[SampleDTO] `gorm:"type:jsonb"`

	Signature string
	Notes     string
	CreatedAt time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (TransportDTO) TableName() string {
	return "transports"
}

type CarrierDTO struct {
	Name          string
	Phone         string
	VehicleNumber string
	VehicleType   string
	LicenseNumber string
}

type AddressDTO struct {
	Street    string
	City      string
	State     string
	ZipCode   string
	Latitude  *float64
	Longitude *float64
}

// SampleDTO is one element of the samples jsonb array.
type SampleDTO struct {
	Temperature *float64  `json:"temperature,omitempty"`
	Humidity    *float64  `json:"humidity,omitempty"`
	RecordedAt  time.Time `json:"recordedAt"`
}

func fromDomain(t *transport.Transport) TransportDTO {
	c := t.Carrier()
	dto := TransportDTO{
		ID:       t.ID().Bytes(),
		OrderID:  t.OrderID().Bytes(),
		BuyerID:  t.BuyerID().Bytes(),
		SellerID: t.SellerID().Bytes(),
		Carrier: CarrierDTO{
			Name:          c.Name(),
			Phone:         c.Phone(),
			VehicleNumber: c.VehicleNumber(),
			VehicleType:   c.VehicleType(),
			LicenseNumber: c.LicenseNumber(),
		},
		Pickup:                addressFromDomain(t.Pickup()),
		Delivery:              addressFromDomain(t.Delivery()),
		PickupDate:            t.PickupDate(),
		EstimatedDeliveryDate: t.EstimatedDeliveryDate(),
		ActualDeliveryDate:    t.ActualDeliveryDate(),
		DepartedAt:            t.DepartedAt(),
		Status:                t.Status().String(),
		Temperature:           t.Temperature(),
		Humidity:              t.Humidity(),
		Photos:                pq.StringArray(t.Photos()),
		Signature:             t.Signature(),
		Notes:                 t.Notes(),
		CreatedAt:             t.CreatedAt(),
		UpdatedAt:             t.UpdatedAt(),
	}

	if e := t.Estimate(); e != nil {
		distance, hours, minutes, at := e.DistanceKm(), e.Hours(), e.Minutes(), e.CalculatedAt()
		dto.EtaDistanceKm = &distance
		dto.EtaHours = &hours
		dto.EtaMinutes = &minutes
		dto.EtaCalculatedAt = &at
	}

	if loc := t.CurrentLocation(); loc != nil {
		lat, lng, at := loc.Point.Latitude(), loc.Point.Longitude(), loc.RecordedAt
		dto.CurrentLatitude = &lat
		dto.CurrentLongitude = &lng
		dto.CurrentLocationAt = &at
	}

	samples := t.Samples()
	dto.Samples = make(datatypes.JSONSlice[SampleDTO], 0, len(samples))
	for _, s := range samples {
		dto.Samples = append(dto.Samples, SampleDTO{
			Temperature: s.Temperature,
			Humidity:    s.Humidity,
			RecordedAt:  s.RecordedAt,
		})
	}

	return dto
}

func addressFromDomain(a kernel.Address) AddressDTO {
	dto := AddressDTO{
		Street:  a.Street(),
		City:    a.City(),
		State:   a.State(),
		ZipCode: a.ZipCode(),
	}
	if p := a.Point(); p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}
	return dto
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	point, err := kernel.NewOptionalGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(dto.Street, dto.City, dto.State, dto.ZipCode, point)
}

func toDomain(dto TransportDTO) (*transport.Transport, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.BuyerID, dto.SellerID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	delivery, err := addressToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	var estimate *transport.Estimate
	if dto.EtaDistanceKm != nil && dto.EtaHours != nil && dto.EtaMinutes != nil {
		var at time.Time
		if dto.EtaCalculatedAt != nil {
			at = *dto.EtaCalculatedAt
		}
		e, etaErr := transport.NewEstimate(*dto.EtaDistanceKm, *dto.EtaHours, *dto.EtaMinutes, at)
		if etaErr != nil {
			return nil, etaErr
		}
		estimate = &e
	}

	var current *transport.LocationSample
	if dto.CurrentLatitude != nil && dto.CurrentLongitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.CurrentLatitude, *dto.CurrentLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		current = &transport.LocationSample{Point: point}
		if dto.CurrentLocationAt != nil {
			current.RecordedAt = *dto.CurrentLocationAt
		}
	}

	samples := make([]transport.MonitoringSample, 0, len(dto.Samples))
	for _, s := range dto.Samples {
		samples = append(samples, transport.MonitoringSample{
			Temperature: s.Temperature,
			Humidity:    s.Humidity,
			RecordedAt:  s.RecordedAt,
		})
	}

	return transport.RestoreTransport(transport.State{
		ID:       ids[0],
		OrderID:  ids[1],
		BuyerID:  ids[2],
		SellerID: ids[3],
		Carrier: transport.NewCarrier(dto.Carrier.Name, dto.Carrier.Phone, dto.Carrier.VehicleNumber,
			dto.Carrier.VehicleType, dto.Carrier.LicenseNumber),
		Pickup:                pickup,
		Delivery:              delivery,
		PickupDate:            dto.PickupDate,
		EstimatedDeliveryDate: dto.EstimatedDeliveryDate,
		Estimate:              estimate,
		ActualDeliveryDate:    dto.ActualDeliveryDate,
		DepartedAt:            dto.DepartedAt,
		Status:                transport.Status(dto.Status),
		CurrentLocation:       current,
		Temperature:           dto.Temperature,
		Humidity:              dto.Humidity,
		Photos:                dto.Photos,
		Samples:               samples,
		Signature:             dto.Signature,
		Notes:                 dto.Notes,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
	})
}
