package orders

import (
	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	"github.com/rfqhub/rfqhub-backend/pkg/numbering"
)

// BuildFromQuote constructs a purchase order from an accepted quote. Pure
// construction: commercial terms are copied, line items are a 1:1
// order-preserving copy with whatever prices the negotiation settled on,
// frozen. No repricing happens here or later.
func BuildFromQuote(quote *models.QuoteRequest) *models.PurchaseOrder {
	quoteID := quote.ID
	order := &models.PurchaseOrder{
		Number:         numbering.NewPurchaseOrderNumber(),
		BuyerTenantID:  quote.BuyerTenantID,
		SellerTenantID: quote.SellerTenantID,
		QuoteRequestID: &quoteID,
		Status:         enums.PurchaseOrderStatusNew,
		WarehouseID:    quote.WarehouseID,
		DeliveryTermID: quote.DeliveryTermID,
		PaymentTermID:  quote.PaymentTermID,
		PaymentModeID:  quote.PaymentModeID,
		ShippingCost:   quote.ShippingCost,
		Currency:       quote.Currency,
		IsActive:       true,
	}
	for _, item := range quote.Items {
		order.Items = append(order.Items, models.PurchaseOrderItem{
			ProductID:     item.ProductID,
			SKUID:         item.SKUID,
			UnitCount:     item.UnitCount,
			TotalQuantity: item.TotalQuantity,
			PricePerUnit:  item.PricePerUnit,
			Currency:      item.Currency,
		})
	}
	return order
}
