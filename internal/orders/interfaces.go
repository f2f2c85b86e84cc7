package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
)

// Repository defines persistence operations for purchase orders. Line items
// are written once at creation; only the order head mutates afterwards.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.PurchaseOrder) (*models.PurchaseOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Save(ctx context.Context, order *models.PurchaseOrder) error
	CreateShipment(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error)
	List(ctx context.Context, params ListParams) (*List, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
