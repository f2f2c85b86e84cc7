package quotes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/pagination"
)

// ErrStaleAggregate reports that a version-guarded save matched no rows, so
// another transition won the race.
var ErrStaleAggregate = errors.New("quote was modified concurrently")

type repository struct {
	db *gorm.DB
}

// NewRepository builds a quotes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, quote *models.QuoteRequest) (*models.QuoteRequest, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	var quote models.QuoteRequest
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Save persists the mutable head fields under an optimistic version guard.
// Line items are written separately via UpdateItemPrices.
func (r *repository) Save(ctx context.Context, quote *models.QuoteRequest) error {
	loaded := quote.Version
	res := r.db.WithContext(ctx).
		Model(&models.QuoteRequest{}).
		Where("id = ? AND version = ?", quote.ID, loaded).
		Updates(map[string]any{
			"status":            quote.Status,
			"shipping_cost":     quote.ShippingCost,
			"is_active":         quote.IsActive,
			"purchase_order_id": quote.PurchaseOrderID,
			"version":           loaded + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleAggregate
	}
	quote.Version = loaded + 1
	return nil
}

// UpdateItemPrices overwrites unit prices line by line. Ids that match no
// row on this quote are skipped without error.
func (r *repository) UpdateItemPrices(ctx context.Context, quoteID uuid.UUID, updates []ItemPriceUpdate) error {
	for _, update := range updates {
		err := r.db.WithContext(ctx).
			Model(&models.QuoteRequestItem{}).
			Where("id = ? AND quote_request_id = ?", update.ItemID, quoteID).
			Update("price_per_unit", update.PricePerUnit).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) List(ctx context.Context, params ListParams) (*List, error) {
	query := r.db.WithContext(ctx).Model(&models.QuoteRequest{}).Preload("Items")

	if params.Filters.BuyerTenantID != nil {
		query = query.Where("buyer_tenant_id = ?", *params.Filters.BuyerTenantID)
	}
	if params.Filters.SellerTenantID != nil {
		query = query.Where("seller_tenant_id = ?", *params.Filters.SellerTenantID)
	}
	if params.Filters.Status != nil {
		query = query.Where("status = ?", *params.Filters.Status)
	}

	cursor, err := pagination.ParseCursor(params.Pagination.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var quotes []models.QuoteRequest
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Pagination.Limit)).
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}

	pageLen, next := pagination.Page(len(quotes), params.Pagination.Limit, func(i int) pagination.Cursor {
		return pagination.Cursor{CreatedAt: quotes[i].CreatedAt, ID: quotes[i].ID}
	})
	return &List{Quotes: quotes[:pageLen], NextCursor: next}, nil
}
