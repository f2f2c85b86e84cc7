package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/pkg/enums"
)

// QuoteRequestItem is one negotiated line on a quote request. The sku ref
// stays null until the seller resolves it; the price stays null until the
// seller responds.
type QuoteRequestItem struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteRequestID uuid.UUID        `gorm:"column:quote_request_id;type:uuid;not null"`
	ProductID      uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	SKUID          *uuid.UUID       `gorm:"column:sku_id;type:uuid"`
	RequestedSKUID *uuid.UUID       `gorm:"column:requested_sku_id;type:uuid"`
	UnitCount      int              `gorm:"column:unit_count;not null;default:1"`
	TotalQuantity  decimal.Decimal  `gorm:"column:total_quantity;type:numeric(14,3);not null"`
	PricePerUnit   *decimal.Decimal `gorm:"column:price_per_unit;type:numeric(14,2)"`
	Currency       enums.Currency   `gorm:"column:currency;type:text;not null;default:'USD'"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
