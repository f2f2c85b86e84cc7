package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/pkg/enums"
)

// PurchaseOrder is the committed order produced from an accepted quote
// request. It is created exactly once, by the order factory; there is no
// user-facing create path.
type PurchaseOrder struct {
	ID             uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number         string                    `gorm:"column:number;not null;uniqueIndex"`
	BuyerTenantID  uuid.UUID                 `gorm:"column:buyer_tenant_id;type:uuid;not null"`
	SellerTenantID uuid.UUID                 `gorm:"column:seller_tenant_id;type:uuid;not null"`
	QuoteRequestID *uuid.UUID                `gorm:"column:quote_request_id;type:uuid;uniqueIndex"`
	Status         enums.PurchaseOrderStatus `gorm:"column:status;type:text;not null;default:'new'"`
	WarehouseID    uuid.UUID                 `gorm:"column:warehouse_id;type:uuid;not null"`
	DeliveryTermID uuid.UUID                 `gorm:"column:delivery_term_id;type:uuid;not null"`
	PaymentTermID  uuid.UUID                 `gorm:"column:payment_term_id;type:uuid;not null"`
	PaymentModeID  uuid.UUID                 `gorm:"column:payment_mode_id;type:uuid;not null"`
	ShippingCost   decimal.Decimal           `gorm:"column:shipping_cost;type:numeric(14,2);not null;default:0"`
	Currency       enums.Currency            `gorm:"column:currency;type:text;not null;default:'USD'"`
	IsActive       bool                      `gorm:"column:is_active;not null;default:true"`
	Version        int64                     `gorm:"column:version;not null;default:0"`
	Items          []PurchaseOrderItem       `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	Shipments      []Shipment                `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

// Subtotal sums quantity times unit price over priced items.
func (p *PurchaseOrder) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range p.Items {
		if item.PricePerUnit == nil {
			continue
		}
		subtotal = subtotal.Add(item.TotalQuantity.Mul(*item.PricePerUnit))
	}
	return subtotal.Round(2)
}

// Total is the subtotal plus shipping cost.
func (p *PurchaseOrder) Total() decimal.Decimal {
	return p.Subtotal().Add(p.ShippingCost).Round(2)
}
