package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipment is an opaque fulfillment record attached to a purchase order.
// The core stores and lists these; carrier integration lives elsewhere.
type Shipment struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaseOrderID uuid.UUID  `gorm:"column:purchase_order_id;type:uuid;not null"`
	Carrier         *string    `gorm:"column:carrier"`
	TrackingNumber  *string    `gorm:"column:tracking_number"`
	ShippedAt       *time.Time `gorm:"column:shipped_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
}
