package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
)

// Repository defines persistence reads for price tiers and list prices. The
// finders return coarse candidate sets; every further filter (active flag,
// quantity bounds, validity window, seller, scope nullness) is applied by the
// resolver so the qualification rules live in one place.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindTiersBySKU(ctx context.Context, skuID uuid.UUID) ([]models.PriceTier, error)
	FindTiersBySKUAndBuyer(ctx context.Context, skuID, buyerID uuid.UUID) ([]models.PriceTier, error)
	FindTiersBySKUAndDestination(ctx context.Context, skuID, destinationID uuid.UUID) ([]models.PriceTier, error)
	FindTiersBySKUBuyerAndDestination(ctx context.Context, skuID, buyerID, destinationID uuid.UUID) ([]models.PriceTier, error)
	FindListPrices(ctx context.Context, skuID uuid.UUID) ([]models.ListPrice, error)
	CountActiveTiers(ctx context.Context, skuID uuid.UUID) (int64, error)
}
