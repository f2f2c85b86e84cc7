package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db"
	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
	"github.com/rfqhub/rfqhub-backend/pkg/numbering"
)

// Service drives a quote request through its negotiation lifecycle. Every
// transition runs load-validate-mutate-save inside one transaction, with the
// repository's version guard serializing concurrent callers.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.QuoteRequest, error)
	Activate(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	BuyerRequest(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	SellerRespond(ctx context.Context, input RespondInput) (*models.QuoteRequest, error)
	BuyerCounter(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	SellerRevise(ctx context.Context, input RespondInput) (*models.QuoteRequest, error)
	BuyerAccept(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	SellerDecline(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	ListQuotes(ctx context.Context, params ListParams) (*List, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	orders OrderCreator
}

// NewService builds a quote service with the required dependencies.
func NewService(repo Repository, tx txRunner, orders OrderCreator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order creator required")
	}
	return &service{repo: repo, tx: tx, orders: orders}, nil
}

// Create drafts a quote in the no_request state with a fresh number. Line
// item validation happens here; the draft itself carries no prices yet.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.QuoteRequest, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	quote := &models.QuoteRequest{
		Number:         numbering.NewQuoteNumber(),
		BuyerTenantID:  input.BuyerTenantID,
		SellerTenantID: input.SellerTenantID,
		LeadID:         input.LeadID,
		Status:         enums.QuoteStatusNoRequest,
		WarehouseID:    input.WarehouseID,
		DeliveryTermID: input.DeliveryTermID,
		PaymentTermID:  input.PaymentTermID,
		PaymentModeID:  input.PaymentModeID,
		ShippingCost:   decimal.Zero,
		Currency:       input.Currency,
	}
	for _, item := range input.Items {
		quote.Items = append(quote.Items, models.QuoteRequestItem{
			ProductID:      item.ProductID,
			SKUID:          item.SKUID,
			RequestedSKUID: item.RequestedSKUID,
			UnitCount:      item.UnitCount,
			TotalQuantity:  item.TotalQuantity,
			Currency:       input.Currency,
		})
	}

	created, err := s.repo.Create(ctx, quote)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating quote")
	}
	return created, nil
}

// Activate moves a draft into negotiation and flips it active.
func (s *service) Activate(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return s.transition(ctx, id, OpActivate, func(ctx context.Context, repo Repository, quote *models.QuoteRequest) error {
		quote.IsActive = true
		return nil
	})
}

// BuyerRequest submits the drafted quote to the seller.
func (s *service) BuyerRequest(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return s.transition(ctx, id, OpBuyerRequest, nil)
}

// SellerRespond prices the requested items and optionally sets shipping.
func (s *service) SellerRespond(ctx context.Context, input RespondInput) (*models.QuoteRequest, error) {
	if err := validateRespond(input); err != nil {
		return nil, err
	}
	return s.transition(ctx, input.QuoteID, OpSellerRespond, s.applyPricing(input))
}

// BuyerCounter re-opens negotiation; the quote returns to requested with its
// data untouched. Counter terms arrive through a later respond call.
func (s *service) BuyerCounter(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return s.transition(ctx, id, OpBuyerCounter, nil)
}

// SellerRevise updates pricing in place while the quote stays responded.
func (s *service) SellerRevise(ctx context.Context, input RespondInput) (*models.QuoteRequest, error) {
	if err := validateRespond(input); err != nil {
		return nil, err
	}
	return s.transition(ctx, input.QuoteID, OpSellerRevise, s.applyPricing(input))
}

// BuyerAccept closes negotiation and hands the quote to the order factory.
// The quote update and the purchase order insert commit together or not at
// all; the created order is reachable through the quote's back-reference.
func (s *service) BuyerAccept(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	var accepted *models.QuoteRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		quote, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapLoadErr(err, id)
		}
		target, err := nextStatus(OpBuyerAccept, quote.Status)
		if err != nil {
			return err
		}

		order, err := s.orders.CreateFromQuote(ctx, tx, quote)
		if err != nil {
			return err
		}

		quote.Status = target
		quote.IsActive = false
		quote.PurchaseOrderID = &order.ID
		if err := repo.Save(ctx, quote); err != nil {
			return mapSaveErr(err)
		}
		accepted = quote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// SellerDecline is an unconditional escape from any state.
func (s *service) SellerDecline(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return s.escape(ctx, id, enums.QuoteStatusDeclined)
}

// Cancel is an unconditional escape from any state, usable by either party.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return s.escape(ctx, id, enums.QuoteStatusCancelled)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadErr(err, id)
	}
	return quote, nil
}

func (s *service) ListQuotes(ctx context.Context, params ListParams) (*List, error) {
	list, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing quotes")
	}
	return list, nil
}

// transition runs one table-gated status change. The optional mutate hook
// runs after validation, before save, inside the transaction, with the
// tx-bound repository so side writes stay atomic with the status change.
func (s *service) transition(ctx context.Context, id uuid.UUID, op Operation, mutate func(context.Context, Repository, *models.QuoteRequest) error) (*models.QuoteRequest, error) {
	var result *models.QuoteRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		quote, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapLoadErr(err, id)
		}
		target, err := nextStatus(op, quote.Status)
		if err != nil {
			return err
		}
		if mutate != nil {
			if err := mutate(ctx, repo, quote); err != nil {
				return err
			}
		}
		quote.Status = target
		if err := repo.Save(ctx, quote); err != nil {
			return mapSaveErr(err)
		}
		// re-read so the caller sees fresh line items after price writes
		result, err = repo.FindByID(ctx, id)
		if err != nil {
			return mapLoadErr(err, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) escape(ctx context.Context, id uuid.UUID, target enums.QuoteStatus) (*models.QuoteRequest, error) {
	var result *models.QuoteRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		quote, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapLoadErr(err, id)
		}
		quote.Status = target
		quote.IsActive = false
		if err := repo.Save(ctx, quote); err != nil {
			return mapSaveErr(err)
		}
		result = quote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyPricing writes item price overwrites and the optional shipping cost.
// Unmatched item ids are ignored by the repository layer.
func (s *service) applyPricing(input RespondInput) func(context.Context, Repository, *models.QuoteRequest) error {
	return func(ctx context.Context, repo Repository, quote *models.QuoteRequest) error {
		if len(input.ItemPrices) > 0 {
			if err := repo.UpdateItemPrices(ctx, quote.ID, input.ItemPrices); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating item prices")
			}
		}
		if input.ShippingCost != nil {
			quote.ShippingCost = *input.ShippingCost
		}
		return nil
	}
}

func validateCreate(input CreateInput) error {
	if input.BuyerTenantID == uuid.Nil || input.SellerTenantID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer and seller tenants are required")
	}
	if input.WarehouseID == uuid.Nil || input.DeliveryTermID == uuid.Nil ||
		input.PaymentTermID == uuid.Nil || input.PaymentModeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "warehouse and commercial terms are required")
	}
	if !input.Currency.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid currency code")
	}
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: product is required", i))
		}
		if item.UnitCount < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: unit count must be at least 1", i))
		}
		if !item.TotalQuantity.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be positive", i))
		}
	}
	return nil
}

func validateRespond(input RespondInput) error {
	if input.QuoteID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "quote id is required")
	}
	if input.ShippingCost != nil && input.ShippingCost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping cost cannot be negative")
	}
	for i, update := range input.ItemPrices {
		if update.ItemID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("price update %d: item id is required", i))
		}
		if update.PricePerUnit.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("price update %d: price cannot be negative", i))
		}
	}
	return nil
}

func mapLoadErr(err error, id uuid.UUID) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("quote %s not found", id))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quote")
}

func mapSaveErr(err error) error {
	if errors.Is(err, ErrStaleAggregate) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "quote was modified concurrently, reload and retry")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving quote")
}
