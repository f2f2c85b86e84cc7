package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/api/responses"
	"github.com/rfqhub/rfqhub-backend/api/validators"
	quotesvc "github.com/rfqhub/rfqhub-backend/internal/quotes"
	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
	"github.com/rfqhub/rfqhub-backend/pkg/logger"
	"github.com/rfqhub/rfqhub-backend/pkg/pagination"
)

// QuoteCreate drafts a new quote request in its initial state.
func QuoteCreate(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload createQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newQuoteResponse(quote))
	}
}

// QuoteGet returns one quote with its line items.
func QuoteGet(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "quoteID"), "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

// QuoteList pages quotes filtered by tenant or status.
func QuoteList(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseQuoteListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListQuotes(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]quoteResponse, 0, len(list.Quotes))
		for i := range list.Quotes {
			items = append(items, newQuoteResponse(&list.Quotes[i]))
		}
		responses.WriteList(w, items, list.NextCursor)
	}
}

// QuoteActivate moves a draft into active negotiation.
func QuoteActivate(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteStatusHandler(svc, logg, quotesvc.Service.Activate)
}

// QuoteSubmit sends the drafted quote to the seller.
func QuoteSubmit(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteStatusHandler(svc, logg, quotesvc.Service.BuyerRequest)
}

// QuoteCounter re-opens negotiation on a responded quote.
func QuoteCounter(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteStatusHandler(svc, logg, quotesvc.Service.BuyerCounter)
}

// QuoteAccept closes negotiation and creates the purchase order.
func QuoteAccept(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteStatusHandler(svc, logg, quotesvc.Service.BuyerAccept)
}

// QuoteDecline ends the negotiation from the seller's side.
func QuoteDecline(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteStatusHandler(svc, logg, quotesvc.Service.SellerDecline)
}

// QuoteCancel ends the negotiation for either party.
func QuoteCancel(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteStatusHandler(svc, logg, quotesvc.Service.Cancel)
}

// QuoteRespond prices the requested lines and optionally sets shipping.
func QuoteRespond(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quotePricingHandler(svc, logg, quotesvc.Service.SellerRespond)
}

// QuoteRevise updates pricing while the quote stays responded.
func QuoteRevise(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return quotePricingHandler(svc, logg, quotesvc.Service.SellerRevise)
}

func quoteStatusHandler(svc quotesvc.Service, logg *logger.Logger, op func(quotesvc.Service, context.Context, uuid.UUID) (*models.QuoteRequest, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "quoteID"), "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := op(svc, r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

func quotePricingHandler(svc quotesvc.Service, logg *logger.Logger, op func(quotesvc.Service, context.Context, quotesvc.RespondInput) (*models.QuoteRequest, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "quoteID"), "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload respondQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := op(svc, r.Context(), payload.toInput(id))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

type createQuoteRequest struct {
	BuyerTenantID  uuid.UUID          `json:"buyer_tenant_id" validate:"required"`
	SellerTenantID uuid.UUID          `json:"seller_tenant_id" validate:"required"`
	LeadID         *uuid.UUID         `json:"lead_id"`
	WarehouseID    uuid.UUID          `json:"warehouse_id" validate:"required"`
	DeliveryTermID uuid.UUID          `json:"delivery_term_id" validate:"required"`
	PaymentTermID  uuid.UUID          `json:"payment_term_id" validate:"required"`
	PaymentModeID  uuid.UUID          `json:"payment_mode_id" validate:"required"`
	Currency       string             `json:"currency" validate:"required"`
	Items          []quoteItemPayload `json:"items" validate:"required,min=1,dive"`
}

type quoteItemPayload struct {
	ProductID      uuid.UUID       `json:"product_id" validate:"required"`
	SKUID          *uuid.UUID      `json:"sku_id"`
	RequestedSKUID *uuid.UUID      `json:"requested_sku_id"`
	UnitCount      int             `json:"unit_count" validate:"required,min=1"`
	TotalQuantity  decimal.Decimal `json:"total_quantity" validate:"required"`
}

func (r createQuoteRequest) toInput() (quotesvc.CreateInput, error) {
	currency, err := enums.ParseCurrency(r.Currency)
	if err != nil {
		return quotesvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
	}

	items := make([]quotesvc.CreateItemInput, len(r.Items))
	for i, payload := range r.Items {
		items[i] = quotesvc.CreateItemInput{
			ProductID:      payload.ProductID,
			SKUID:          payload.SKUID,
			RequestedSKUID: payload.RequestedSKUID,
			UnitCount:      payload.UnitCount,
			TotalQuantity:  payload.TotalQuantity,
		}
	}

	return quotesvc.CreateInput{
		BuyerTenantID:  r.BuyerTenantID,
		SellerTenantID: r.SellerTenantID,
		LeadID:         r.LeadID,
		WarehouseID:    r.WarehouseID,
		DeliveryTermID: r.DeliveryTermID,
		PaymentTermID:  r.PaymentTermID,
		PaymentModeID:  r.PaymentModeID,
		Currency:       currency,
		Items:          items,
	}, nil
}

type respondQuoteRequest struct {
	ItemPrices   []itemPricePayload `json:"item_prices" validate:"dive"`
	ShippingCost *decimal.Decimal   `json:"shipping_cost"`
}

type itemPricePayload struct {
	ItemID       uuid.UUID       `json:"item_id" validate:"required"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"required"`
}

func (r respondQuoteRequest) toInput(quoteID uuid.UUID) quotesvc.RespondInput {
	updates := make([]quotesvc.ItemPriceUpdate, len(r.ItemPrices))
	for i, payload := range r.ItemPrices {
		updates[i] = quotesvc.ItemPriceUpdate{
			ItemID:       payload.ItemID,
			PricePerUnit: payload.PricePerUnit,
		}
	}
	return quotesvc.RespondInput{
		QuoteID:      quoteID,
		ItemPrices:   updates,
		ShippingCost: r.ShippingCost,
	}
}

func parseQuoteListParams(r *http.Request) (quotesvc.ListParams, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return quotesvc.ListParams{}, err
	}

	buyerID, err := validators.ParseQueryUUID(r, "buyer_tenant_id")
	if err != nil {
		return quotesvc.ListParams{}, err
	}
	sellerID, err := validators.ParseQueryUUID(r, "seller_tenant_id")
	if err != nil {
		return quotesvc.ListParams{}, err
	}

	var status *enums.QuoteStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := enums.ParseQuoteStatus(raw)
		if err != nil {
			return quotesvc.ListParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		status = &parsed
	}

	return quotesvc.ListParams{
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		},
		Filters: quotesvc.ListFilters{
			BuyerTenantID:  buyerID,
			SellerTenantID: sellerID,
			Status:         status,
		},
	}, nil
}

type quoteResponse struct {
	ID              uuid.UUID           `json:"id"`
	Number          string              `json:"number"`
	BuyerTenantID   uuid.UUID           `json:"buyer_tenant_id"`
	SellerTenantID  uuid.UUID           `json:"seller_tenant_id"`
	LeadID          *uuid.UUID          `json:"lead_id,omitempty"`
	Status          string              `json:"status"`
	WarehouseID     uuid.UUID           `json:"warehouse_id"`
	DeliveryTermID  uuid.UUID           `json:"delivery_term_id"`
	PaymentTermID   uuid.UUID           `json:"payment_term_id"`
	PaymentModeID   uuid.UUID           `json:"payment_mode_id"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
	Currency        string              `json:"currency"`
	IsActive        bool                `json:"is_active"`
	PurchaseOrderID *uuid.UUID          `json:"purchase_order_id,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Total           decimal.Decimal     `json:"total"`
	Items           []quoteItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type quoteItemResponse struct {
	ID             uuid.UUID        `json:"id"`
	ProductID      uuid.UUID        `json:"product_id"`
	SKUID          *uuid.UUID       `json:"sku_id,omitempty"`
	RequestedSKUID *uuid.UUID       `json:"requested_sku_id,omitempty"`
	UnitCount      int              `json:"unit_count"`
	TotalQuantity  decimal.Decimal  `json:"total_quantity"`
	PricePerUnit   *decimal.Decimal `json:"price_per_unit,omitempty"`
	Currency       string           `json:"currency"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func newQuoteResponse(quote *models.QuoteRequest) quoteResponse {
	items := make([]quoteItemResponse, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, quoteItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			SKUID:          item.SKUID,
			RequestedSKUID: item.RequestedSKUID,
			UnitCount:      item.UnitCount,
			TotalQuantity:  item.TotalQuantity,
			PricePerUnit:   item.PricePerUnit,
			Currency:       string(item.Currency),
			CreatedAt:      item.CreatedAt,
			UpdatedAt:      item.UpdatedAt,
		})
	}

	return quoteResponse{
		ID:              quote.ID,
		Number:          quote.Number,
		BuyerTenantID:   quote.BuyerTenantID,
		SellerTenantID:  quote.SellerTenantID,
		LeadID:          quote.LeadID,
		Status:          string(quote.Status),
		WarehouseID:     quote.WarehouseID,
		DeliveryTermID:  quote.DeliveryTermID,
		PaymentTermID:   quote.PaymentTermID,
		PaymentModeID:   quote.PaymentModeID,
		ShippingCost:    quote.ShippingCost,
		Currency:        string(quote.Currency),
		IsActive:        quote.IsActive,
		PurchaseOrderID: quote.PurchaseOrderID,
		Subtotal:        quote.Subtotal(),
		Total:           quote.Total(),
		Items:           items,
		CreatedAt:       quote.CreatedAt,
		UpdatedAt:       quote.UpdatedAt,
	}
}
