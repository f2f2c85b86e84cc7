package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/pkg/enums"
)

// ListPrice is the catalog rack rate for a sku, the lowest-priority source
// in price resolution.
type ListPrice struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKUID     uuid.UUID       `gorm:"column:sku_id;type:uuid;not null;index"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	Currency  enums.Currency  `gorm:"column:currency;type:text;not null;default:'USD'"`
	StartsAt  *time.Time      `gorm:"column:starts_at"`
	EndsAt    *time.Time      `gorm:"column:ends_at"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
