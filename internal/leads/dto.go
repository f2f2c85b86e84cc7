package leads

import (
	"github.com/google/uuid"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	"github.com/rfqhub/rfqhub-backend/pkg/pagination"
)

// CreateInput carries the contact details for a new inquiry.
type CreateInput struct {
	SellerTenantID uuid.UUID
	CartID         *uuid.UUID
	CustomerID     *uuid.UUID
	ContactName    string
	ContactEmail   string
	ContactPhone   *string
	ContactCompany *string
}

// ForwardInput hands a lead to a distributor tenant.
type ForwardInput struct {
	LeadID              uuid.UUID
	DistributorTenantID uuid.UUID
}

// ListFilters narrows lead listings.
type ListFilters struct {
	SellerTenantID *uuid.UUID
	Status         *enums.LeadStatus
	ParentLeadID   *uuid.UUID
}

// List is one page of leads with the cursor for the next page.
type List struct {
	Leads      []models.Lead
	NextCursor *string
}

// ListParams bundles pagination with filters.
type ListParams struct {
	Pagination pagination.Params
	Filters    ListFilters
}
