package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/api/responses"
	"github.com/rfqhub/rfqhub-backend/api/validators"
	pricingsvc "github.com/rfqhub/rfqhub-backend/internal/pricing"
	"github.com/rfqhub/rfqhub-backend/pkg/logger"
)

// PricingResolve answers a unit-price lookup. A query that matches no rule
// returns an empty resolution rather than an error.
func PricingResolve(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload priceQueryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolution, err := svc.CalculatePrice(r.Context(), payload.toQuery())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newResolutionResponse(resolution))
	}
}

// PricingResolveTotal answers a lookup extended with the line total.
func PricingResolveTotal(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload priceQueryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolution, err := svc.CalculateTotalPrice(r.Context(), payload.toQuery())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newTotalResolutionResponse(resolution))
	}
}

// PricingHasPricing reports whether any pricing exists for a sku at all.
func PricingHasPricing(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skuID, err := validators.ParsePathUUID(chi.URLParam(r, "skuID"), "skuID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		has, err := svc.HasPricing(r.Context(), skuID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"has_pricing": has})
	}
}

type priceQueryRequest struct {
	SKUID         uuid.UUID       `json:"sku_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	BuyerID       *uuid.UUID      `json:"buyer_id"`
	DestinationID *uuid.UUID      `json:"destination_id"`
	SellerID      *uuid.UUID      `json:"seller_id"`
}

func (r priceQueryRequest) toQuery() pricingsvc.PriceQuery {
	return pricingsvc.PriceQuery{
		SKUID:         r.SKUID,
		Quantity:      r.Quantity,
		BuyerID:       r.BuyerID,
		DestinationID: r.DestinationID,
		SellerID:      r.SellerID,
	}
}

type resolutionResponse struct {
	Resolved  bool             `json:"resolved"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Currency  *string          `json:"currency,omitempty"`
	Source    *string          `json:"source,omitempty"`
	TierID    *uuid.UUID       `json:"tier_id,omitempty"`
}

type totalResolutionResponse struct {
	resolutionResponse
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Total    *decimal.Decimal `json:"total,omitempty"`
}

func newResolutionResponse(resolution *pricingsvc.Resolution) resolutionResponse {
	if resolution == nil {
		return resolutionResponse{Resolved: false}
	}
	currency := string(resolution.Currency)
	source := string(resolution.Source)
	return resolutionResponse{
		Resolved:  true,
		UnitPrice: &resolution.UnitPrice,
		Currency:  &currency,
		Source:    &source,
		TierID:    resolution.TierID,
	}
}

func newTotalResolutionResponse(resolution *pricingsvc.TotalResolution) totalResolutionResponse {
	if resolution == nil {
		return totalResolutionResponse{resolutionResponse: resolutionResponse{Resolved: false}}
	}
	return totalResolutionResponse{
		resolutionResponse: newResolutionResponse(&resolution.Resolution),
		Quantity:           &resolution.Quantity,
		Total:              &resolution.Total,
	}
}
