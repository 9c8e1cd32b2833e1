package queries

import (
	"time"

	"farmtrade/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is the read model of a purchase order. CropName comes from the listing and
// is empty when the listing is gone.
type OrderView struct {
	ID                   kernel.UUID
	Number               string
	BuyerID              kernel.UUID
	SellerID             kernel.UUID
	ListingID            kernel.UUID
	CropName             string
	Quantity             decimal.Decimal
	Unit                 string
	PricePerUnit         decimal.Decimal
	TotalAmount          decimal.Decimal
	AmountPaid           decimal.Decimal
	Status               string
	PaymentStatus        string
	QualityDescription   string
	QualityRequirements  string
	BuyerNotes           string
	SellerNotes          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	AcceptedAt           *time.Time
	RejectedAt           *time.Time
	CancelledAt          *time.Time
	ExpectedDeliveryDate *time.Time
	DeliveryDate         *time.Time
}

const orderColumns = `
	o.id, o.number, o.buyer_id, o.seller_id, o.listing_id,
	COALESCE(l.crop_name, '') AS crop_name,
	o.quantity, o.unit, o.price_per_unit, o.total_amount, o.amount_paid,
	o.status, o.payment_status,
	o.quality_description, o.quality_requirements, o.buyer_notes, o.seller_notes,
	o.created_at, o.updated_at, o.accepted_at, o.rejected_at, o.cancelled_at,
	o.expected_delivery_date, o.delivery_date
`

const orderFrom = `
	FROM orders o
	LEFT JOIN listings l ON l.id = o.listing_id
`

type orderRow struct {
	ID                   uuid.UUID
	Number               string
	BuyerID              uuid.UUID
	SellerID             uuid.UUID
	ListingID            uuid.UUID
	CropName             string
	Quantity             decimal.Decimal
	Unit                 string
	PricePerUnit         decimal.Decimal
	TotalAmount          decimal.Decimal
	AmountPaid           decimal.Decimal
	Status               string
	PaymentStatus        string
	QualityDescription   string
	QualityRequirements  string
	BuyerNotes           string
	SellerNotes          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	AcceptedAt           *time.Time
	RejectedAt           *time.Time
	CancelledAt          *time.Time
	ExpectedDeliveryDate *time.Time
	DeliveryDate         *time.Time
}

func (r orderRow) view() (OrderView, error) {
	ids, err := uuids(r.ID, r.BuyerID, r.SellerID, r.ListingID)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:                   ids[0],
		Number:               r.Number,
		BuyerID:              ids[1],
		SellerID:             ids[2],
		ListingID:            ids[3],
		CropName:             r.CropName,
		Quantity:             r.Quantity,
		Unit:                 r.Unit,
		PricePerUnit:         r.PricePerUnit,
		TotalAmount:          r.TotalAmount,
		AmountPaid:           r.AmountPaid,
		Status:               r.Status,
		PaymentStatus:        r.PaymentStatus,
		QualityDescription:   r.QualityDescription,
		QualityRequirements:  r.QualityRequirements,
		BuyerNotes:           r.BuyerNotes,
		SellerNotes:          r.SellerNotes,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
		AcceptedAt:           r.AcceptedAt,
		RejectedAt:           r.RejectedAt,
		CancelledAt:          r.CancelledAt,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
		DeliveryDate:         r.DeliveryDate,
	}, nil
}

func uuids(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
