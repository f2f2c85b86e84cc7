package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
)

// Creator is the quote-acceptance entry point into this package. It runs the
// factory and persists the result inside the caller's transaction so the
// quote update and the order insert commit together.
type Creator struct {
	repo Repository
}

// NewCreator builds a creator backed by the orders repository.
func NewCreator(repo Repository) *Creator {
	return &Creator{repo: repo}
}

// CreateFromQuote builds and persists the purchase order for an accepted
// quote. The quote must already carry its line items.
func (c *Creator) CreateFromQuote(ctx context.Context, tx *gorm.DB, quote *models.QuoteRequest) (*models.PurchaseOrder, error) {
	if quote.Status != enums.QuoteStatusResponded {
		return nil, pkgerrors.NewInvalidTransition(quote.Status.String(), enums.QuoteStatusAccepted.String())
	}
	order := BuildFromQuote(quote)
	created, err := c.repo.WithTx(tx).Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating purchase order")
	}
	return created, nil
}
