// Package catalog reads listings from the marketplace listing service over HTTP.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/ports"
	"farmtrade/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 5 * time.Second

type listingDTO struct {
	ID       string          `json:"id"`
	SellerID string          `json:"sellerId"`
	CropName string          `json:"cropName"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

type envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    listingDTO `json:"data"`
}

// HTTPListingCatalog implements ports.ListingCatalog against GET {baseURL}/listings/{id}.
type HTTPListingCatalog struct {
	client *resty.Client
}

// NewHTTPListingCatalog builds a client with retries on transport errors and 5xx.
func NewHTTPListingCatalog(baseURL string) *HTTPListingCatalog {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	return &HTTPListingCatalog{client: client}
}

func (c *HTTPListingCatalog) GetListing(ctx context.Context, id kernel.UUID) (ports.Listing, error) {
	if err := id.Validate(); err != nil {
		return ports.Listing{}, err
	}

	var body envelope
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id.String()).
		SetResult(&body).
		Get("/listings/{id}")
	if err != nil {
		return ports.Listing{}, fmt.Errorf("listing catalog: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return ports.Listing{}, errs.NewObjectNotFoundError("listing", id.String())
	case resp.IsError():
		return ports.Listing{}, fmt.Errorf("listing catalog: unexpected status %d", resp.StatusCode())
	}

	sellerID, err := kernel.UUIDFromString(body.Data.SellerID)
	if err != nil {
		return ports.Listing{}, fmt.Errorf("listing catalog: seller of %s: %w", id, err)
	}

	return ports.Listing{
		ID:       id,
		SellerID: sellerID,
		CropName: body.Data.CropName,
		Quantity: body.Data.Quantity,
		Unit:     body.Data.Unit,
		Price:    body.Data.Price,
	}, nil
}
