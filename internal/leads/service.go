package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db"
	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
)

// Service drives the pre-quote lead lifecycle, including the distributor
// fan-out on forward.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Lead, error)
	Open(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Convert(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	ForwardToDistributor(ctx context.Context, input ForwardInput) (*models.Lead, error)
	DistributorAccept(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	DistributorReject(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Children(ctx context.Context, parentID uuid.UUID) ([]models.Lead, error)
	ListLeads(ctx context.Context, params ListParams) (*List, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a lead service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("leads repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Lead, error) {
	if input.SellerTenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller tenant is required")
	}
	if input.ContactName == "" || input.ContactEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact name and email are required")
	}

	lead := &models.Lead{
		SellerTenantID: input.SellerTenantID,
		CartID:         input.CartID,
		CustomerID:     input.CustomerID,
		ContactName:    input.ContactName,
		ContactEmail:   input.ContactEmail,
		ContactPhone:   input.ContactPhone,
		ContactCompany: input.ContactCompany,
		Status:         enums.LeadStatusNoLead,
	}
	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating lead")
	}
	return created, nil
}

func (s *service) Open(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return s.transition(ctx, id, OpOpen)
}

func (s *service) Convert(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return s.transition(ctx, id, OpConvert)
}

// ForwardToDistributor marks the lead forwarded and spawns a child lead
// owned by the distributor, carrying the same buyer contact. Both writes
// commit in one transaction.
func (s *service) ForwardToDistributor(ctx context.Context, input ForwardInput) (*models.Lead, error) {
	if input.DistributorTenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor tenant is required")
	}
	var result *models.Lead
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		lead, err := repo.FindByID(ctx, input.LeadID)
		if err != nil {
			return mapLoadErr(err, input.LeadID)
		}
		target, err := nextStatus(OpForward, lead.Status)
		if err != nil {
			return err
		}

		parentID := lead.ID
		child := &models.Lead{
			SellerTenantID: input.DistributorTenantID,
			CartID:         lead.CartID,
			CustomerID:     lead.CustomerID,
			ContactName:    lead.ContactName,
			ContactEmail:   lead.ContactEmail,
			ContactPhone:   lead.ContactPhone,
			ContactCompany: lead.ContactCompany,
			Status:         enums.LeadStatusSentToDistributor,
			ParentLeadID:   &parentID,
		}
		if _, err := repo.Create(ctx, child); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating distributor lead")
		}

		lead.Status = target
		if err := repo.Save(ctx, lead); err != nil {
			return mapSaveErr(err)
		}
		result = lead
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) DistributorAccept(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return s.transition(ctx, id, OpDistributorAccept)
}

func (s *service) DistributorReject(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return s.transition(ctx, id, OpDistributorReject)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadErr(err, id)
	}
	return lead, nil
}

// Children resolves the fan-out set by parent reference rather than an
// embedded object graph.
func (s *service) Children(ctx context.Context, parentID uuid.UUID) ([]models.Lead, error) {
	children, err := s.repo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading child leads")
	}
	return children, nil
}

func (s *service) ListLeads(ctx context.Context, params ListParams) (*List, error) {
	list, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing leads")
	}
	return list, nil
}

func (s *service) transition(ctx context.Context, id uuid.UUID, op Operation) (*models.Lead, error) {
	var result *models.Lead
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		lead, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapLoadErr(err, id)
		}
		target, err := nextStatus(op, lead.Status)
		if err != nil {
			return err
		}
		lead.Status = target
		if err := repo.Save(ctx, lead); err != nil {
			return mapSaveErr(err)
		}
		result = lead
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func mapLoadErr(err error, id uuid.UUID) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("lead %s not found", id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading lead")
}

func mapSaveErr(err error) error {
	if errors.Is(err, ErrStaleAggregate) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "lead was modified concurrently, reload and retry")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving lead")
}
