package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	"github.com/rfqhub/rfqhub-backend/pkg/pagination"
)

// ListFilters narrows order listings by tenant or status.
type ListFilters struct {
	BuyerTenantID  *uuid.UUID
	SellerTenantID *uuid.UUID
	Status         *enums.PurchaseOrderStatus
}

// List is one page of orders with the cursor for the next page.
type List struct {
	Orders     []models.PurchaseOrder
	NextCursor *string
}

// ListParams bundles pagination with filters.
type ListParams struct {
	Pagination pagination.Params
	Filters    ListFilters
}

// ShipmentInput records a fulfillment shipment against an order.
type ShipmentInput struct {
	OrderID        uuid.UUID
	Carrier        *string
	TrackingNumber *string
	ShippedAt      *time.Time
}
