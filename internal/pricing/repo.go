package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindTiersBySKU(ctx context.Context, skuID uuid.UUID) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	err := r.db.WithContext(ctx).
		Where("product_sku_id = ?", skuID).
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repository) FindTiersBySKUAndBuyer(ctx context.Context, skuID, buyerID uuid.UUID) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	err := r.db.WithContext(ctx).
		Where("product_sku_id = ? AND buyer_tenant_id = ?", skuID, buyerID).
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repository) FindTiersBySKUAndDestination(ctx context.Context, skuID, destinationID uuid.UUID) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	err := r.db.WithContext(ctx).
		Where("product_sku_id = ? AND destination_id = ?", skuID, destinationID).
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repository) FindTiersBySKUBuyerAndDestination(ctx context.Context, skuID, buyerID, destinationID uuid.UUID) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	err := r.db.WithContext(ctx).
		Where("product_sku_id = ? AND buyer_tenant_id = ? AND destination_id = ?", skuID, buyerID, destinationID).
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repository) FindListPrices(ctx context.Context, skuID uuid.UUID) ([]models.ListPrice, error) {
	var prices []models.ListPrice
	err := r.db.WithContext(ctx).
		Where("sku_id = ?", skuID).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repository) CountActiveTiers(ctx context.Context, skuID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PriceTier{}).
		Where("product_sku_id = ? AND is_active = ?", skuID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
