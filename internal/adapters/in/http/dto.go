package http

import (
	"time"

	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type qualityBody struct {
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type createOrderBody struct {
	FarmerID     types.UUID      `json:"farmerId"`
	CropID       types.UUID      `json:"cropId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Quality      qualityBody     `json:"quality"`
	Notes        string          `json:"notes"`
}

type updateOrderBody struct {
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         *string          `json:"unit"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit"`
	Quality      *qualityBody     `json:"quality"`
	Notes        *string          `json:"notes"`
}

type answerBody struct {
	Notes  string `json:"notes"`
	Reason string `json:"reason"`
}

type recordPaymentBody struct {
	OrderID         types.UUID      `json:"orderId"`
	PaymentMethod   string          `json:"paymentMethod"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"referenceNumber"`
	Description     string          `json:"description"`
}

type addressBody struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zipCode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (b *addressBody) toAddress() (*kernel.Address, error) {
	if b == nil {
		return nil, nil
	}
	point, err := kernel.NewOptionalGeoPoint(b.Latitude, b.Longitude)
	if err != nil {
		return nil, err
	}
	address, err := kernel.NewAddress(b.Address, b.City, b.State, b.ZipCode, point)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

type carrierBody struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
	VehicleType   string `json:"vehicleType"`
	LicenseNumber string `json:"licenseNumber"`
}

func (b carrierBody) toCarrier() transport.Carrier {
	return transport.NewCarrier(b.Name, b.Phone, b.VehicleNumber, b.VehicleType, b.LicenseNumber)
}

type scheduleTransportBody struct {
	OrderID           types.UUID   `json:"orderId"`
	PickupDate        time.Time    `json:"pickupDate"`
	TransportProvider carrierBody  `json:"transportProvider"`
	PickupLocation    *addressBody `json:"pickupLocation"`
	DeliveryLocation  *addressBody `json:"deliveryLocation"`
	Notes             string       `json:"notes"`
}

type locationBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type transportStatusBody struct {
	Status          string        `json:"status"`
	CurrentLocation *locationBody `json:"currentLocation"`
	Notes           string        `json:"notes"`
	Signature       string        `json:"signature"`
}

type monitoringBody struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Photos      []string `json:"photos"`
}

type orderResponse struct {
	ID                   types.UUID      `json:"id"`
	OrderNumber          string          `json:"orderNumber"`
	BuyerID              types.UUID      `json:"buyerId"`
	FarmerID             types.UUID      `json:"farmerId"`
	CropID               types.UUID      `json:"cropId"`
	CropName             string          `json:"cropName,omitempty"`
	Quantity             decimal.Decimal `json:"quantity"`
	Unit                 string          `json:"unit"`
	PricePerUnit         decimal.Decimal `json:"pricePerUnit"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	AmountPaid           decimal.Decimal `json:"amountPaid"`
	Status               string          `json:"status"`
	PaymentStatus        string          `json:"paymentStatus"`
	Quality              qualityBody     `json:"quality"`
	BuyerNotes           string          `json:"buyerNotes,omitempty"`
	FarmerNotes          string          `json:"farmerNotes,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
	AcceptedAt           *time.Time      `json:"acceptedAt,omitempty"`
	RejectedAt           *time.Time      `json:"rejectedAt,omitempty"`
	CancelledAt          *time.Time      `json:"cancelledAt,omitempty"`
	ExpectedDeliveryDate *time.Time      `json:"expectedDeliveryDate,omitempty"`
	DeliveryDate         *time.Time      `json:"deliveryDate,omitempty"`
}

func newOrderResponse(v queries.OrderView) orderResponse {
	return orderResponse{
		ID:                   v.ID.Bytes(),
		OrderNumber:          v.Number,
		BuyerID:              v.BuyerID.Bytes(),
		FarmerID:             v.SellerID.Bytes(),
		CropID:               v.ListingID.Bytes(),
		CropName:             v.CropName,
		Quantity:             v.Quantity,
		Unit:                 v.Unit,
		PricePerUnit:         v.PricePerUnit,
		TotalAmount:          v.TotalAmount,
		AmountPaid:           v.AmountPaid,
		Status:               v.Status,
		PaymentStatus:        v.PaymentStatus,
		Quality:              qualityBody{Description: v.QualityDescription, Requirements: v.QualityRequirements},
		BuyerNotes:           v.BuyerNotes,
		FarmerNotes:          v.SellerNotes,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
		AcceptedAt:           v.AcceptedAt,
		RejectedAt:           v.RejectedAt,
		CancelledAt:          v.CancelledAt,
		ExpectedDeliveryDate: v.ExpectedDeliveryDate,
		DeliveryDate:         v.DeliveryDate,
	}
}

type transactionResponse struct {
	ID            types.UUID      `json:"id"`
	TransactionID string          `json:"transactionId"`
	OrderID       *types.UUID     `json:"orderId,omitempty"`
	OrderNumber   string          `json:"orderNumber,omitempty"`
	BuyerID       types.UUID      `json:"buyerId"`
	FarmerID      types.UUID      `json:"farmerId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	Description   string          `json:"description,omitempty"`
	Reference     string          `json:"referenceNumber,omitempty"`
	PaymentDate   time.Time       `json:"paymentDate"`
	AppliedAt     *time.Time      `json:"appliedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func newTransactionResponse(v queries.TransactionView) transactionResponse {
	r := transactionResponse{
		ID:            v.ID.Bytes(),
		TransactionID: v.Number,
		OrderNumber:   v.OrderNumber,
		BuyerID:       v.BuyerID.Bytes(),
		FarmerID:      v.SellerID.Bytes(),
		Type:          v.Kind,
		Amount:        v.Amount,
		PaymentMethod: v.Method,
		Status:        v.Status,
		Description:   v.Description,
		Reference:     v.Reference,
		PaymentDate:   v.PaymentDate,
		AppliedAt:     v.AppliedAt,
		CreatedAt:     v.CreatedAt,
	}
	if v.OrderID != nil {
		id := types.UUID(v.OrderID.Bytes())
		r.OrderID = &id
	}
	return r
}

type statsResponse struct {
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	TotalTransactions     int64           `json:"totalTransactions"`
	CompletedTransactions int64           `json:"completedTransactions"`
	PendingTransactions   int64           `json:"pendingTransactions"`
	FailedTransactions    int64           `json:"failedTransactions"`
}

type addressResponse struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zipCode"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type etaResponse struct {
	Distance     float64    `json:"distance"`
	Hours        int        `json:"hours"`
	Minutes      int        `json:"minutes"`
	CalculatedAt *time.Time `json:"calculatedAt,omitempty"`
}

type locationResponse struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

type transportResponse struct {
	ID                    types.UUID           `json:"id"`
	OrderID               types.UUID           `json:"orderId"`
	OrderNumber           string               `json:"orderNumber,omitempty"`
	BuyerID               types.UUID           `json:"buyerId"`
	FarmerID              types.UUID           `json:"farmerId"`
	TransportProvider     carrierBody          `json:"transportProvider"`
	PickupLocation        addressResponse      `json:"pickupLocation"`
	DeliveryLocation      addressResponse      `json:"deliveryLocation"`
	PickupDate            time.Time            `json:"pickupDate"`
	EstimatedDeliveryDate time.Time            `json:"estimatedDeliveryDate"`
	ActualDeliveryDate    *time.Time           `json:"actualDeliveryDate,omitempty"`
	EstimatedTime         *etaResponse         `json:"estimatedTime,omitempty"`
	Status                string               `json:"status"`
	CurrentLocation       *locationResponse    `json:"currentLocation,omitempty"`
	Temperature           *float64             `json:"temperature,omitempty"`
	Humidity              *float64             `json:"humidity,omitempty"`
	Photos                []string             `json:"photos"`
	MonitoringHistory     []queries.SampleView `json:"monitoringHistory"`
	Signature             string               `json:"signature,omitempty"`
	Notes                 string               `json:"notes,omitempty"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

func newAddressResponse(v queries.AddressView) addressResponse {
	return addressResponse{
		Address:   v.Street,
		City:      v.City,
		State:     v.State,
		ZipCode:   v.ZipCode,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
	}
}

func newTransportResponse(v queries.TransportView) transportResponse {
	r := transportResponse{
		ID:          v.ID.Bytes(),
		OrderID:     v.OrderID.Bytes(),
		OrderNumber: v.OrderNumber,
		BuyerID:     v.BuyerID.Bytes(),
		FarmerID:    v.SellerID.Bytes(),
		TransportProvider: carrierBody{
			Name:          v.Carrier.Name,
			Phone:         v.Carrier.Phone,
			VehicleNumber: v.Carrier.VehicleNumber,
			VehicleType:   v.Carrier.VehicleType,
			LicenseNumber: v.Carrier.LicenseNumber,
		},
		PickupLocation:        newAddressResponse(v.Pickup),
		DeliveryLocation:      newAddressResponse(v.Delivery),
		PickupDate:            v.PickupDate,
		EstimatedDeliveryDate: v.EstimatedDeliveryDate,
		ActualDeliveryDate:    v.ActualDeliveryDate,
		Status:                v.Status,
		Temperature:           v.Temperature,
		Humidity:              v.Humidity,
		Photos:                v.Photos,
		MonitoringHistory:     v.Samples,
		Signature:             v.Signature,
		Notes:                 v.Notes,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
	}
	if v.Eta != nil {
		r.EstimatedTime = &etaResponse{
			Distance:     v.Eta.DistanceKm,
			Hours:        v.Eta.Hours,
			Minutes:      v.Eta.Minutes,
			CalculatedAt: v.Eta.CalculatedAt,
		}
	}
	if v.CurrentLocation != nil {
		r.CurrentLocation = &locationResponse{
			Latitude:   v.CurrentLocation.Latitude,
			Longitude:  v.CurrentLocation.Longitude,
			RecordedAt: v.CurrentLocation.RecordedAt,
		}
	}
	return r
}

func mapItems[V any, R any](items []V, f func(V) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = f(item)
	}
	return out
}
