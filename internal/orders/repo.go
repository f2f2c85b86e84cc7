package orders

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
var ErrStaleAggregate = errors.New("order was modified concurrently")

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Shipments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Save persists the mutable head fields under an optimistic version guard.
// Items are immutable after creation and never written here.
func (r *repository) Save(ctx context.Context, order *models.PurchaseOrder) error {
	loaded := order.Version
	res := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Where("id = ? AND version = ?", order.ID, loaded).
		Updates(map[string]any{
			"status":    order.Status,
			"is_active": order.IsActive,
			"version":   loaded + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleAggregate
	}
	order.Version = loaded + 1
	return nil
}

func (r *repository) CreateShipment(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error) {
	if err := r.db.WithContext(ctx).Create(shipment).Error; err != nil {
		return nil, err
	}
	return shipment, nil
}

func (r *repository) List(ctx context.Context, params ListParams) (*List, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrder{}).Preload("Items")

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

	var orders []models.PurchaseOrder
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Pagination.Limit)).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	pageLen, next := pagination.Page(len(orders), params.Pagination.Limit, func(i int) pagination.Cursor {
		return pagination.Cursor{CreatedAt: orders[i].CreatedAt, ID: orders[i].ID}
	})
	return &List{Orders: orders[:pageLen], NextCursor: next}, nil
}
