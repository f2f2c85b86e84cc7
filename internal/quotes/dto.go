package quotes

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	"github.com/rfqhub/rfqhub-backend/pkg/pagination"
)

// CreateInput carries everything needed to draft a quote request.
type CreateInput struct {
	BuyerTenantID  uuid.UUID
	SellerTenantID uuid.UUID
	LeadID         *uuid.UUID
	WarehouseID    uuid.UUID
	DeliveryTermID uuid.UUID
	PaymentTermID  uuid.UUID
	PaymentModeID  uuid.UUID
	Currency       enums.Currency
	Items          []CreateItemInput
}

// CreateItemInput is one requested line on a new quote.
type CreateItemInput struct {
	ProductID      uuid.UUID
	SKUID          *uuid.UUID
	RequestedSKUID *uuid.UUID
	UnitCount      int
	TotalQuantity  decimal.Decimal
}

// ItemPriceUpdate overwrites the unit price of one existing line item.
// Updates whose item id does not belong to the quote are dropped without
// error; callers holding stale ids simply see no effect.
type ItemPriceUpdate struct {
	ItemID       uuid.UUID
	PricePerUnit decimal.Decimal
}

// RespondInput carries the seller's pricing for respond and revise calls.
// A nil shipping cost leaves the current value unchanged.
type RespondInput struct {
	QuoteID      uuid.UUID
	ItemPrices   []ItemPriceUpdate
	ShippingCost *decimal.Decimal
}

// ListFilters narrows quote listings by tenant or status.
type ListFilters struct {
	BuyerTenantID  *uuid.UUID
	SellerTenantID *uuid.UUID
	Status         *enums.QuoteStatus
}

// List is one page of quotes with the cursor for the next page.
type List struct {
	Quotes     []models.QuoteRequest
	NextCursor *string
}

// ListParams bundles pagination with filters.
type ListParams struct {
	Pagination pagination.Params
	Filters    ListFilters
}
