package leads

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/pagination"
)

// ErrStaleAggregate reports that a version-guarded save matched no rows.
var ErrStaleAggregate = errors.New("lead was modified concurrently")

type repository struct {
	db *gorm.DB
}

// NewRepository builds a leads repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]models.Lead, error) {
	var children []models.Lead
	err := r.db.WithContext(ctx).
		Where("parent_lead_id = ?", parentID).
		Order("created_at ASC").
		Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}

// Save persists the status under an optimistic version guard.
func (r *repository) Save(ctx context.Context, lead *models.Lead) error {
	loaded := lead.Version
	res := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ? AND version = ?", lead.ID, loaded).
		Updates(map[string]any{
			"status":  lead.Status,
			"version": loaded + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleAggregate
	}
	lead.Version = loaded + 1
	return nil
}

func (r *repository) List(ctx context.Context, params ListParams) (*List, error) {
	query := r.db.WithContext(ctx).Model(&models.Lead{})

	if params.Filters.SellerTenantID != nil {
		query = query.Where("seller_tenant_id = ?", *params.Filters.SellerTenantID)
	}
	if params.Filters.Status != nil {
		query = query.Where("status = ?", *params.Filters.Status)
	}
	if params.Filters.ParentLeadID != nil {
		query = query.Where("parent_lead_id = ?", *params.Filters.ParentLeadID)
	}

	cursor, err := pagination.ParseCursor(params.Pagination.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var leads []models.Lead
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Pagination.Limit)).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}

	pageLen, next := pagination.Page(len(leads), params.Pagination.Limit, func(i int) pagination.Cursor {
		return pagination.Cursor{CreatedAt: leads[i].CreatedAt, ID: leads[i].ID}
	})
	return &List{Leads: leads[:pageLen], NextCursor: next}, nil
}
