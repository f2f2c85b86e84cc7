package leads

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
)

// Repository defines persistence operations for leads.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]models.Lead, error)
	Save(ctx context.Context, lead *models.Lead) error
	List(ctx context.Context, params ListParams) (*List, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
