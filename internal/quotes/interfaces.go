package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
)

// Repository defines persistence operations for quote requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quote *models.QuoteRequest) (*models.QuoteRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	Save(ctx context.Context, quote *models.QuoteRequest) error
	UpdateItemPrices(ctx context.Context, quoteID uuid.UUID, updates []ItemPriceUpdate) error
	List(ctx context.Context, params ListParams) (*List, error)
}

// OrderCreator is the narrow slice of the orders package that quote
// acceptance needs: build and persist the purchase order inside the caller's
// transaction.
type OrderCreator interface {
	CreateFromQuote(ctx context.Context, tx *gorm.DB, quote *models.QuoteRequest) (*models.PurchaseOrder, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
