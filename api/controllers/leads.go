package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rfqhub/rfqhub-backend/api/responses"
	"github.com/rfqhub/rfqhub-backend/api/validators"
	leadsvc "github.com/rfqhub/rfqhub-backend/internal/leads"
	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
	"github.com/rfqhub/rfqhub-backend/pkg/logger"
	"github.com/rfqhub/rfqhub-backend/pkg/pagination"
)

// LeadCreate records a new sales inquiry.
func LeadCreate(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createLeadRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newLeadResponse(lead))
	}
}

// LeadGet returns one lead.
func LeadGet(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "leadID"), "leadID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newLeadResponse(lead))
	}
}

// LeadChildren lists the distributor leads spawned from a parent.
func LeadChildren(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "leadID"), "leadID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		children, err := svc.Children(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]leadResponse, 0, len(children))
		for i := range children {
			items = append(items, newLeadResponse(&children[i]))
		}
		responses.WriteSuccess(w, items)
	}
}

// LeadList pages leads filtered by owner or status.
func LeadList(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseLeadListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListLeads(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]leadResponse, 0, len(list.Leads))
		for i := range list.Leads {
			items = append(items, newLeadResponse(&list.Leads[i]))
		}
		responses.WriteList(w, items, list.NextCursor)
	}
}

// LeadOpen acknowledges a raw inquiry as a working lead.
func LeadOpen(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return leadStatusHandler(svc, logg, leadsvc.Service.Open)
}

// LeadConvert closes the lead in favor of a quote.
func LeadConvert(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return leadStatusHandler(svc, logg, leadsvc.Service.Convert)
}

// LeadDistributorAccept records a distributor taking the forwarded lead.
func LeadDistributorAccept(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return leadStatusHandler(svc, logg, leadsvc.Service.DistributorAccept)
}

// LeadDistributorReject records a distributor passing on the forwarded lead.
func LeadDistributorReject(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return leadStatusHandler(svc, logg, leadsvc.Service.DistributorReject)
}

// LeadForward hands the lead to a distributor tenant, spawning a child lead.
func LeadForward(svc leadsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "leadID"), "leadID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload forwardLeadRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.ForwardToDistributor(r.Context(), leadsvc.ForwardInput{
			LeadID:              id,
			DistributorTenantID: payload.DistributorTenantID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newLeadResponse(lead))
	}
}

func leadStatusHandler(svc leadsvc.Service, logg *logger.Logger, op func(leadsvc.Service, context.Context, uuid.UUID) (*models.Lead, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "leadID"), "leadID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := op(svc, r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newLeadResponse(lead))
	}
}

type createLeadRequest struct {
	SellerTenantID uuid.UUID  `json:"seller_tenant_id" validate:"required"`
	CartID         *uuid.UUID `json:"cart_id"`
	CustomerID     *uuid.UUID `json:"customer_id"`
	ContactName    string     `json:"contact_name" validate:"required"`
	ContactEmail   string     `json:"contact_email" validate:"required,email"`
	ContactPhone   *string    `json:"contact_phone"`
	ContactCompany *string    `json:"contact_company"`
}

func (r createLeadRequest) toInput() leadsvc.CreateInput {
	return leadsvc.CreateInput{
		SellerTenantID: r.SellerTenantID,
		CartID:         r.CartID,
		CustomerID:     r.CustomerID,
		ContactName:    r.ContactName,
		ContactEmail:   r.ContactEmail,
		ContactPhone:   r.ContactPhone,
		ContactCompany: r.ContactCompany,
	}
}

type forwardLeadRequest struct {
	DistributorTenantID uuid.UUID `json:"distributor_tenant_id" validate:"required"`
}

func parseLeadListParams(r *http.Request) (leadsvc.ListParams, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return leadsvc.ListParams{}, err
	}

	sellerID, err := validators.ParseQueryUUID(r, "seller_tenant_id")
	if err != nil {
		return leadsvc.ListParams{}, err
	}
	parentID, err := validators.ParseQueryUUID(r, "parent_lead_id")
	if err != nil {
		return leadsvc.ListParams{}, err
	}

	var status *enums.LeadStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := enums.ParseLeadStatus(raw)
		if err != nil {
			return leadsvc.ListParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		status = &parsed
	}

	return leadsvc.ListParams{
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		},
		Filters: leadsvc.ListFilters{
			SellerTenantID: sellerID,
			Status:         status,
			ParentLeadID:   parentID,
		},
	}, nil
}

type leadResponse struct {
	ID             uuid.UUID  `json:"id"`
	SellerTenantID uuid.UUID  `json:"seller_tenant_id"`
	CartID         *uuid.UUID `json:"cart_id,omitempty"`
	CustomerID     *uuid.UUID `json:"customer_id,omitempty"`
	ContactName    string     `json:"contact_name"`
	ContactEmail   string     `json:"contact_email"`
	ContactPhone   *string    `json:"contact_phone,omitempty"`
	ContactCompany *string    `json:"contact_company,omitempty"`
	Status         string     `json:"status"`
	ParentLeadID   *uuid.UUID `json:"parent_lead_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func newLeadResponse(lead *models.Lead) leadResponse {
	return leadResponse{
		ID:             lead.ID,
		SellerTenantID: lead.SellerTenantID,
		CartID:         lead.CartID,
		CustomerID:     lead.CustomerID,
		ContactName:    lead.ContactName,
		ContactEmail:   lead.ContactEmail,
		ContactPhone:   lead.ContactPhone,
		ContactCompany: lead.ContactCompany,
		Status:         string(lead.Status),
		ParentLeadID:   lead.ParentLeadID,
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
	}
}
