package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
)

// Source names the resolution level that produced a price.
type Source string

const (
	SourceBuyerDestinationTier Source = "buyer_destination_tier"
	SourceBuyerTier            Source = "buyer_tier"
	SourceDestinationTier      Source = "destination_tier"
	SourceVolumeTier           Source = "volume_tier"
	SourceListPrice            Source = "list_price"
)

// PriceQuery is one unit-price lookup. Buyer, destination and seller are all
// optional; quantity must be positive.
type PriceQuery struct {
	SKUID         uuid.UUID
	Quantity      decimal.Decimal
	BuyerID       *uuid.UUID
	DestinationID *uuid.UUID
	SellerID      *uuid.UUID
}

// Resolution is a successfully resolved unit price. A nil Resolution from
// CalculatePrice means no rule matched, which is an ordinary outcome rather
// than an error.
type Resolution struct {
	UnitPrice decimal.Decimal
	Currency  enums.Currency
	Source    Source
	TierID    *uuid.UUID
}

// TotalResolution extends a unit resolution with the extended line total.
type TotalResolution struct {
	Resolution
	Quantity decimal.Decimal
	Total    decimal.Decimal
}

// Service resolves unit prices from overlapping scoped pricing rules. The
// most specific populated level wins outright; price only breaks ties within
// a level.
type Service interface {
	CalculatePrice(ctx context.Context, query PriceQuery) (*Resolution, error)
	CalculateTotalPrice(ctx context.Context, query PriceQuery) (*TotalResolution, error)
	HasPricing(ctx context.Context, skuID uuid.UUID) (bool, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a pricing resolver with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) CalculatePrice(ctx context.Context, query PriceQuery) (*Resolution, error) {
	if query.SKUID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku id is required")
	}
	if !query.Quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	now := s.now()

	// Level 1: tiers pinned to exactly this buyer and destination.
	if query.BuyerID != nil && query.DestinationID != nil {
		tiers, err := s.repo.FindTiersBySKUBuyerAndDestination(ctx, query.SKUID, *query.BuyerID, *query.DestinationID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading buyer+destination tiers")
		}
		if res := pickTier(tiers, query, now, SourceBuyerDestinationTier, true); res != nil {
			return res, nil
		}
	}

	// Level 2: buyer-scoped, destination-agnostic tiers.
	if query.BuyerID != nil {
		tiers, err := s.repo.FindTiersBySKUAndBuyer(ctx, query.SKUID, *query.BuyerID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading buyer tiers")
		}
		scoped := filterTiers(tiers, func(t models.PriceTier) bool { return t.DestinationID == nil })
		if res := pickTier(scoped, query, now, SourceBuyerTier, false); res != nil {
			return res, nil
		}
	}

	// Level 3: destination-scoped, buyer-agnostic tiers.
	if query.DestinationID != nil {
		tiers, err := s.repo.FindTiersBySKUAndDestination(ctx, query.SKUID, *query.DestinationID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading destination tiers")
		}
		scoped := filterTiers(tiers, func(t models.PriceTier) bool { return t.BuyerTenantID == nil })
		if res := pickTier(scoped, query, now, SourceDestinationTier, false); res != nil {
			return res, nil
		}
	}

	// Level 4: pure volume breakpoints, scoped to neither buyer nor destination.
	tiers, err := s.repo.FindTiersBySKU(ctx, query.SKUID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading volume tiers")
	}
	volume := filterTiers(tiers, func(t models.PriceTier) bool {
		return t.BuyerTenantID == nil && t.DestinationID == nil
	})
	if res := pickTier(volume, query, now, SourceVolumeTier, true); res != nil {
		return res, nil
	}

	// Level 5: list price fallback, scope-blind.
	return s.resolveListPrice(ctx, query.SKUID, now)
}

func (s *service) CalculateTotalPrice(ctx context.Context, query PriceQuery) (*TotalResolution, error) {
	unit, err := s.CalculatePrice(ctx, query)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	return &TotalResolution{
		Resolution: *unit,
		Quantity:   query.Quantity,
		Total:      unit.UnitPrice.Mul(query.Quantity).Round(2),
	}, nil
}

// HasPricing is a coarse probe: it checks for any active tier or any
// currently valid list price, without quantity or tier-window filtering.
func (s *service) HasPricing(ctx context.Context, skuID uuid.UUID) (bool, error) {
	if skuID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "sku id is required")
	}
	res, err := s.resolveListPrice(ctx, skuID, s.now())
	if err != nil {
		return false, err
	}
	if res != nil {
		return true, nil
	}
	count, err := s.repo.CountActiveTiers(ctx, skuID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting active tiers")
	}
	return count > 0, nil
}

func (s *service) resolveListPrice(ctx context.Context, skuID uuid.UUID, now time.Time) (*Resolution, error) {
	prices, err := s.repo.FindListPrices(ctx, skuID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading list prices")
	}
	var best *Resolution
	for i := range prices {
		lp := prices[i]
		if !lp.IsActive {
			continue
		}
		if lp.StartsAt != nil && now.Before(*lp.StartsAt) {
			continue
		}
		if lp.EndsAt != nil && now.After(*lp.EndsAt) {
			continue
		}
		if best == nil || lp.Price.LessThan(best.UnitPrice) {
			best = &Resolution{
				UnitPrice: lp.Price,
				Currency:  lp.Currency,
				Source:    SourceListPrice,
			}
		}
	}
	return best, nil
}

// pickTier returns the cheapest qualifying tier at one level, or nil when the
// level is empty. Seller filtering applies only where applySeller is set; the
// intermediate buyer-only and destination-only levels ignore seller.
func pickTier(tiers []models.PriceTier, query PriceQuery, now time.Time, source Source, applySeller bool) *Resolution {
	var best *Resolution
	for i := range tiers {
		tier := tiers[i]
		if !tierQualifies(tier, query, now, applySeller) {
			continue
		}
		price := effectivePrice(tier)
		if best == nil || price.LessThan(best.UnitPrice) {
			tierID := tier.ID
			best = &Resolution{
				UnitPrice: price,
				Currency:  tier.Currency,
				Source:    source,
				TierID:    &tierID,
			}
		}
	}
	return best
}

func tierQualifies(tier models.PriceTier, query PriceQuery, now time.Time, applySeller bool) bool {
	if !tier.IsActive {
		return false
	}
	if applySeller && query.SellerID != nil {
		if tier.SellerTenantID == nil || *tier.SellerTenantID != *query.SellerID {
			return false
		}
	}
	if query.Quantity.LessThan(tier.MinimumQuantity) {
		return false
	}
	if tier.MaximumQuantity != nil && query.Quantity.GreaterThan(*tier.MaximumQuantity) {
		return false
	}
	if tier.ValidFrom != nil && now.Before(*tier.ValidFrom) {
		return false
	}
	if tier.ValidTo != nil && now.After(*tier.ValidTo) {
		return false
	}
	return true
}

// effectivePrice applies the percentage discount, rounding half-up to cents.
func effectivePrice(tier models.PriceTier) decimal.Decimal {
	if tier.DiscountPercent == nil || tier.DiscountPercent.IsZero() {
		return tier.PricePerUnit.Round(2)
	}
	factor := decimal.NewFromInt(1).Sub(tier.DiscountPercent.Div(decimal.NewFromInt(100)))
	return tier.PricePerUnit.Mul(factor).Round(2)
}

func filterTiers(tiers []models.PriceTier, keep func(models.PriceTier) bool) []models.PriceTier {
	out := tiers[:0:0]
	for _, tier := range tiers {
		if keep(tier) {
			out = append(out, tier)
		}
	}
	return out
}
