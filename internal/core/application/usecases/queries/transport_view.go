package queries

import (
	"time"

	"farmtrade/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type AddressView struct {
	Street    string
	City      string
	State     string
	ZipCode   string
	Latitude  *float64
	Longitude *float64
}

type CarrierView struct {
	Name          string
	Phone         string
	VehicleNumber string
	VehicleType   string
	LicenseNumber string
}

// EtaView is nil on a TransportView when no coordinates were known at scheduling.
type EtaView struct {
	DistanceKm   float64
	Hours        int
	Minutes      int
	CalculatedAt *time.Time
}

type LocationView struct {
	Latitude   float64
	Longitude  float64
	RecordedAt *time.Time
}

type SampleView struct {
	Temperature *float64  `json:"temperature,omitempty"`
	Humidity    *float64  `json:"humidity,omitempty"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// TransportView is the read model of a transport leg.
type TransportView struct {
	ID                    kernel.UUID
	OrderID               kernel.UUID
	OrderNumber           string
	BuyerID               kernel.UUID
	SellerID              kernel.UUID
	Carrier               CarrierView
	Pickup                AddressView
	Delivery              AddressView
	PickupDate            time.Time
	EstimatedDeliveryDate time.Time
	ActualDeliveryDate    *time.Time
	Eta                   *EtaView
	Status                string
	CurrentLocation       *LocationView
	Temperature           *float64
	Humidity              *float64
	Photos                []string
	Samples               []SampleView
	Signature             string
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

const transportColumns = `
	t.id, t.order_id, COALESCE(o.number, '') AS order_number, t.buyer_id, t.seller_id,
	t.transporter_name, t.transporter_phone, t.transporter_vehicle_number,
	t.transporter_vehicle_type, t.transporter_license_number,
	t.pickup_street, t.pickup_city, t.pickup_state, t.pickup_zip_code,
	t.pickup_latitude, t.pickup_longitude,
	t.delivery_street, t.delivery_city, t.delivery_state, t.delivery_zip_code,
	t.delivery_latitude, t.delivery_longitude,
	t.pickup_date, t.estimated_delivery_date, t.actual_delivery_date,
	t.eta_distance_km, t.eta_hours, t.eta_minutes, t.eta_calculated_at,
	t.status, t.current_latitude, t.current_longitude, t.current_location_at,
	t.temperature, t.humidity, t.photos, t.samples,
	t.signature, t.notes, t.created_at, t.updated_at
`

const transportFrom = `
	FROM transports t
	LEFT JOIN orders o ON o.id = t.order_id
`

type transportRow struct {
	ID                       uuid.UUID
	OrderID                  uuid.UUID
	OrderNumber              string
	BuyerID                  uuid.UUID
	SellerID                 uuid.UUID
	TransporterName          string
	TransporterPhone         string
	TransporterVehicleNumber string
	TransporterVehicleType   string
	TransporterLicenseNumber string
	PickupStreet             string
	PickupCity               string
	PickupState              string
	PickupZipCode            string
	PickupLatitude           *float64
	PickupLongitude          *float64
	DeliveryStreet           string
	DeliveryCity             string
	DeliveryState            string
	DeliveryZipCode          string
	DeliveryLatitude         *float64
	DeliveryLongitude        *float64
	PickupDate               time.Time
	EstimatedDeliveryDate    time.Time
	ActualDeliveryDate       *time.Time
	EtaDistanceKm            *float64
	EtaHours                 *int
	EtaMinutes               *int
	EtaCalculatedAt          *time.Time
	Status                   string
	CurrentLatitude          *float64
	CurrentLongitude         *float64
	CurrentLocationAt        *time.Time
	Temperature              *float64
	Humidity                 *float64
	Photos                   pq.StringArray
	Samples                  datatypes.JSONSlice[SampleView]
	Signature                string
	Notes                    string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (r transportRow) view() (TransportView, error) {
	ids, err := uuids(r.ID, r.OrderID, r.BuyerID, r.SellerID)
	if err != nil {
		return TransportView{}, err
	}

	v := TransportView{
		ID:          ids[0],
		OrderID:     ids[1],
		OrderNumber: r.OrderNumber,
		BuyerID:     ids[2],
		SellerID:    ids[3],
		Carrier: CarrierView{
			Name:          r.TransporterName,
			Phone:         r.TransporterPhone,
			VehicleNumber: r.TransporterVehicleNumber,
			VehicleType:   r.TransporterVehicleType,
			LicenseNumber: r.TransporterLicenseNumber,
		},
		Pickup: AddressView{
			Street: r.PickupStreet, City: r.PickupCity, State: r.PickupState, ZipCode: r.PickupZipCode,
			Latitude: r.PickupLatitude, Longitude: r.PickupLongitude,
		},
		Delivery: AddressView{
			Street: r.DeliveryStreet, City: r.DeliveryCity, State: r.DeliveryState, ZipCode: r.DeliveryZipCode,
			Latitude: r.DeliveryLatitude, Longitude: r.DeliveryLongitude,
		},
		PickupDate:            r.PickupDate,
		EstimatedDeliveryDate: r.EstimatedDeliveryDate,
		ActualDeliveryDate:    r.ActualDeliveryDate,
		Status:                r.Status,
		Temperature:           r.Temperature,
		Humidity:              r.Humidity,
		Photos:                []string(r.Photos),
		Samples:               []SampleView(r.Samples),
		Signature:             r.Signature,
		Notes:                 r.Notes,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
	if v.Photos == nil {
		v.Photos = make([]string, 0)
	}
	if v.Samples == nil {
		v.Samples = make([]SampleView, 0)
	}

	if r.EtaDistanceKm != nil && r.EtaHours != nil && r.EtaMinutes != nil {
		v.Eta = &EtaView{
			DistanceKm:   *r.EtaDistanceKm,
			Hours:        *r.EtaHours,
			Minutes:      *r.EtaMinutes,
			CalculatedAt: r.EtaCalculatedAt,
		}
	}
	if r.CurrentLatitude != nil && r.CurrentLongitude != nil {
		v.CurrentLocation = &LocationView{
			Latitude:   *r.CurrentLatitude,
			Longitude:  *r.CurrentLongitude,
			RecordedAt: r.CurrentLocationAt,
		}
	}

	return v, nil
}
