package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/pkg/enums"
)

// PriceTier is a scoped, quantity-bounded, time-bounded pricing rule for a
// sku. Null scope refs widen the rule: a null buyer means any buyer, a null
// destination any destination, a null maximum quantity unbounded volume.
// Tiers are immutable business configuration maintained by seller admin
// tooling outside this core.
type PriceTier struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerTenantID  *uuid.UUID       `gorm:"column:seller_tenant_id;type:uuid;index"`
	BuyerTenantID   *uuid.UUID       `gorm:"column:buyer_tenant_id;type:uuid;index"`
	DestinationID   *uuid.UUID       `gorm:"column:destination_id;type:uuid;index"`
	ProductSKUID    uuid.UUID        `gorm:"column:product_sku_id;type:uuid;not null;index"`
	DeliveryTermID  *uuid.UUID       `gorm:"column:delivery_term_id;type:uuid"`
	PaymentTermID   *uuid.UUID       `gorm:"column:payment_term_id;type:uuid"`
	MinimumQuantity decimal.Decimal  `gorm:"column:minimum_quantity;type:numeric(14,3);not null"`
	MaximumQuantity *decimal.Decimal `gorm:"column:maximum_quantity;type:numeric(14,3)"`
	PricePerUnit    decimal.Decimal  `gorm:"column:price_per_unit;type:numeric(14,2);not null"`
	DiscountPercent *decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2)"`
	Currency        enums.Currency   `gorm:"column:currency;type:text;not null;default:'USD'"`
	ValidFrom       *time.Time       `gorm:"column:valid_from"`
	ValidTo         *time.Time       `gorm:"column:valid_to"`
	IsActive        bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
