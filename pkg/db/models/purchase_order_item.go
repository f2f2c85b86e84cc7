package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/pkg/enums"
)

// PurchaseOrderItem snapshots one negotiated quote line at acceptance time.
// Prices are frozen here; fulfillment never reprices.
type PurchaseOrderItem struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaseOrderID uuid.UUID        `gorm:"column:purchase_order_id;type:uuid;not null"`
	ProductID       uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	SKUID           *uuid.UUID       `gorm:"column:sku_id;type:uuid"`
	UnitCount       int              `gorm:"column:unit_count;not null;default:1"`
	TotalQuantity   decimal.Decimal  `gorm:"column:total_quantity;type:numeric(14,3);not null"`
	PricePerUnit    *decimal.Decimal `gorm:"column:price_per_unit;type:numeric(14,2)"`
	Currency        enums.Currency   `gorm:"column:currency;type:text;not null;default:'USD'"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
