package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rfqhub/rfqhub-backend/pkg/enums"
)

// Lead is a pre-quote sales inquiry. Forwarding to a distributor spawns a
// child lead; the parent link is an id reference resolved through the repo,
// never an embedded pointer graph.
type Lead struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerTenantID uuid.UUID        `gorm:"column:seller_tenant_id;type:uuid;not null"`
	CartID         *uuid.UUID       `gorm:"column:cart_id;type:uuid"`
	CustomerID     *uuid.UUID       `gorm:"column:customer_id;type:uuid"`
	ContactName    string           `gorm:"column:contact_name;not null"`
	ContactEmail   string           `gorm:"column:contact_email;not null"`
	ContactPhone   *string          `gorm:"column:contact_phone"`
	ContactCompany *string          `gorm:"column:contact_company"`
	Status         enums.LeadStatus `gorm:"column:status;type:text;not null;default:'no_lead'"`
	ParentLeadID   *uuid.UUID       `gorm:"column:parent_lead_id;type:uuid;index"`
	Version        int64            `gorm:"column:version;not null;default:0"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
