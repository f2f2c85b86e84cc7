package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/pkg/enums"
)

// QuoteRequest is the negotiable draft order exchanged between a buyer and a
// seller before commitment. The purchase order created on acceptance is held
// as an id back-reference, never an embedded object.
type QuoteRequest struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number          string             `gorm:"column:number;not null;uniqueIndex"`
	BuyerTenantID   uuid.UUID          `gorm:"column:buyer_tenant_id;type:uuid;not null"`
	SellerTenantID  uuid.UUID          `gorm:"column:seller_tenant_id;type:uuid;not null"`
	LeadID          *uuid.UUID         `gorm:"column:lead_id;type:uuid"`
	Status          enums.QuoteStatus  `gorm:"column:status;type:text;not null;default:'no_request'"`
	WarehouseID     uuid.UUID          `gorm:"column:warehouse_id;type:uuid;not null"`
	DeliveryTermID  uuid.UUID          `gorm:"column:delivery_term_id;type:uuid;not null"`
	PaymentTermID   uuid.UUID          `gorm:"column:payment_term_id;type:uuid;not null"`
	PaymentModeID   uuid.UUID          `gorm:"column:payment_mode_id;type:uuid;not null"`
	ShippingCost    decimal.Decimal    `gorm:"column:shipping_cost;type:numeric(14,2);not null;default:0"`
	Currency        enums.Currency     `gorm:"column:currency;type:text;not null;default:'USD'"`
	IsActive        bool               `gorm:"column:is_active;not null;default:false"`
	PurchaseOrderID *uuid.UUID         `gorm:"column:purchase_order_id;type:uuid"`
	Version         int64              `gorm:"column:version;not null;default:0"`
	Items           []QuoteRequestItem `gorm:"foreignKey:QuoteRequestID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Subtotal sums quantity times unit price over items that have been priced.
func (q *QuoteRequest) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range q.Items {
		if item.PricePerUnit == nil {
			continue
		}
		subtotal = subtotal.Add(item.TotalQuantity.Mul(*item.PricePerUnit))
	}
	return subtotal.Round(2)
}

// Total is the subtotal plus shipping cost.
func (q *QuoteRequest) Total() decimal.Decimal {
	return q.Subtotal().Add(q.ShippingCost).Round(2)
}
