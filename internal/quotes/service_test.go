package quotes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	pkgerrors "github.com/rfqhub/rfqhub-backend/pkg/errors"
)

type stubRepo struct {
	quotes  map[uuid.UUID]*models.QuoteRequest
	saveErr error
}

func newStubRepo(quotes ...*models.QuoteRequest) *stubRepo {
	repo := &stubRepo{quotes: make(map[uuid.UUID]*models.QuoteRequest)}
	for _, q := range quotes {
		repo.quotes[q.ID] = q
	}
	return repo
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, quote *models.QuoteRequest) (*models.QuoteRequest, error) {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	for i := range quote.Items {
		if quote.Items[i].ID == uuid.Nil {
			quote.Items[i].ID = uuid.New()
		}
	}
	s.quotes[quote.ID] = quote
	return quote, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	quote, ok := s.quotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quote, nil
}

func (s *stubRepo) Save(ctx context.Context, quote *models.QuoteRequest) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.quotes[quote.ID] = quote
	quote.Version++
	return nil
}

func (s *stubRepo) UpdateItemPrices(ctx context.Context, quoteID uuid.UUID, updates []ItemPriceUpdate) error {
	quote, ok := s.quotes[quoteID]
	if !ok {
		return nil
	}
	for _, update := range updates {
		for i := range quote.Items {
			if quote.Items[i].ID == update.ItemID {
				price := update.PricePerUnit
				quote.Items[i].PricePerUnit = &price
			}
		}
	}
	return nil
}

func (s *stubRepo) List(ctx context.Context, params ListParams) (*List, error) {
	var out []models.QuoteRequest
	for _, q := range s.quotes {
		out = append(out, *q)
	}
	return &List{Quotes: out}, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOrderCreator struct {
	created []*models.PurchaseOrder
	err     error
}

func (s *stubOrderCreator) CreateFromQuote(ctx context.Context, tx *gorm.DB, quote *models.QuoteRequest) (*models.PurchaseOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	quoteID := quote.ID
	order := &models.PurchaseOrder{
		ID:             uuid.New(),
		BuyerTenantID:  quote.BuyerTenantID,
		SellerTenantID: quote.SellerTenantID,
		QuoteRequestID: &quoteID,
		Status:         enums.PurchaseOrderStatusNew,
		ShippingCost:   quote.ShippingCost,
		Currency:       quote.Currency,
		IsActive:       true,
	}
	for _, item := range quote.Items {
		order.Items = append(order.Items, models.PurchaseOrderItem{
			ProductID:     item.ProductID,
			SKUID:         item.SKUID,
			UnitCount:     item.UnitCount,
			TotalQuantity: item.TotalQuantity,
			PricePerUnit:  item.PricePerUnit,
			Currency:      item.Currency,
		})
	}
	s.created = append(s.created, order)
	return order, nil
}

func newTestService(t *testing.T, repo Repository, creator OrderCreator) Service {
	t.Helper()
	if creator == nil {
		creator = &stubOrderCreator{}
	}
	svc, err := NewService(repo, stubTxRunner{}, creator)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func quoteInStatus(status enums.QuoteStatus) *models.QuoteRequest {
	quote := &models.QuoteRequest{
		ID:             uuid.New(),
		Number:         "QT-test",
		BuyerTenantID:  uuid.New(),
		SellerTenantID: uuid.New(),
		WarehouseID:    uuid.New(),
		DeliveryTermID: uuid.New(),
		PaymentTermID:  uuid.New(),
		PaymentModeID:  uuid.New(),
		Status:         status,
		Currency:       enums.CurrencyUSD,
	}
	price := decimal.RequireFromString("12.50")
	quote.Items = []models.QuoteRequestItem{
		{
			ID:            uuid.New(),
			ProductID:     uuid.New(),
			UnitCount:     2,
			TotalQuantity: decimal.RequireFromString("10"),
			PricePerUnit:  &price,
			Currency:      enums.CurrencyUSD,
		},
	}
	return quote
}

func assertStateConflict(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a state conflict, got nil")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
}

func TestCreateDraftsNoRequestQuote(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil)

	quote, err := svc.Create(context.Background(), CreateInput{
		BuyerTenantID:  uuid.New(),
		SellerTenantID: uuid.New(),
		WarehouseID:    uuid.New(),
		DeliveryTermID: uuid.New(),
		PaymentTermID:  uuid.New(),
		PaymentModeID:  uuid.New(),
		Currency:       enums.CurrencyUSD,
		Items: []CreateItemInput{
			{ProductID: uuid.New(), UnitCount: 1, TotalQuantity: decimal.RequireFromString("5")},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if quote.Status != enums.QuoteStatusNoRequest {
		t.Fatalf("expected no_request, got %s", quote.Status)
	}
	if quote.Number == "" || quote.Number[:3] != "QT-" {
		t.Fatalf("expected a QT number, got %q", quote.Number)
	}
	if quote.IsActive {
		t.Fatal("draft must not be active")
	}
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	_, err := svc.Create(context.Background(), CreateInput{
		BuyerTenantID:  uuid.New(),
		SellerTenantID: uuid.New(),
		WarehouseID:    uuid.New(),
		DeliveryTermID: uuid.New(),
		PaymentTermID:  uuid.New(),
		PaymentModeID:  uuid.New(),
		Currency:       enums.CurrencyUSD,
		Items: []CreateItemInput{
			{ProductID: uuid.New(), UnitCount: 1, TotalQuantity: decimal.Zero},
		},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestHappyPathNegotiation(t *testing.T) {
	quote := quoteInStatus(enums.QuoteStatusNoRequest)
	repo := newStubRepo(quote)
	svc := newTestService(t, repo, nil)
	ctx := context.Background()

	activated, err := svc.Activate(ctx, quote.ID)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if activated.Status != enums.QuoteStatusNew || !activated.IsActive {
		t.Fatalf("expected active new quote, got %s active=%v", activated.Status, activated.IsActive)
	}

	requested, err := svc.BuyerRequest(ctx, quote.ID)
	if err != nil {
		t.Fatalf("buyer request: %v", err)
	}
	if requested.Status != enums.QuoteStatusRequested {
		t.Fatalf("expected requested, got %s", requested.Status)
	}

	shipping := decimal.RequireFromString("9.99")
	responded, err := svc.SellerRespond(ctx, RespondInput{
		QuoteID: quote.ID,
		ItemPrices: []ItemPriceUpdate{
			{ItemID: quote.Items[0].ID, PricePerUnit: decimal.RequireFromString("15.00")},
		},
		ShippingCost: &shipping,
	})
	if err != nil {
		t.Fatalf("seller respond: %v", err)
	}
	if responded.Status != enums.QuoteStatusResponded {
		t.Fatalf("expected responded, got %s", responded.Status)
	}
	if !responded.ShippingCost.Equal(shipping) {
		t.Fatalf("expected shipping %s, got %s", shipping, responded.ShippingCost)
	}
	if responded.Items[0].PricePerUnit == nil || !responded.Items[0].PricePerUnit.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("expected item priced at 15.00, got %v", responded.Items[0].PricePerUnit)
	}
}

func TestEveryTransitionRejectsWrongPredecessor(t *testing.T) {
	wrongStates := map[Operation]enums.QuoteStatus{
		OpActivate:      enums.QuoteStatusResponded,
		OpBuyerRequest:  enums.QuoteStatusNoRequest,
		OpSellerRespond: enums.QuoteStatusNew,
		OpBuyerCounter:  enums.QuoteStatusRequested,
		OpSellerRevise:  enums.QuoteStatusAccepted,
		OpBuyerAccept:   enums.QuoteStatusRequested,
	}
	ctx := context.Background()

	for op, wrong := range wrongStates {
		quote := quoteInStatus(wrong)
		svc := newTestService(t, newStubRepo(quote), nil)

		var err error
		switch op {
		case OpActivate:
			_, err = svc.Activate(ctx, quote.ID)
		case OpBuyerRequest:
			_, err = svc.BuyerRequest(ctx, quote.ID)
		case OpSellerRespond:
			_, err = svc.SellerRespond(ctx, RespondInput{QuoteID: quote.ID})
		case OpBuyerCounter:
			_, err = svc.BuyerCounter(ctx, quote.ID)
		case OpSellerRevise:
			_, err = svc.SellerRevise(ctx, RespondInput{QuoteID: quote.ID})
		case OpBuyerAccept:
			_, err = svc.BuyerAccept(ctx, quote.ID)
		}
		assertStateConflict(t, err)
	}
}

func TestBuyerCounterReopensNegotiation(t *testing.T) {
	quote := quoteInStatus(enums.QuoteStatusResponded)
	svc := newTestService(t, newStubRepo(quote), nil)

	reopened, err := svc.BuyerCounter(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("buyer counter: %v", err)
	}
	if reopened.Status != enums.QuoteStatusRequested {
		t.Fatalf("expected requested, got %s", reopened.Status)
	}
}

func TestSellerReviseKeepsRespondedStatus(t *testing.T) {
	quote := quoteInStatus(enums.QuoteStatusResponded)
	svc := newTestService(t, newStubRepo(quote), nil)

	revised, err := svc.SellerRevise(context.Background(), RespondInput{
		QuoteID: quote.ID,
		ItemPrices: []ItemPriceUpdate{
			{ItemID: quote.Items[0].ID, PricePerUnit: decimal.RequireFromString("11.00")},
		},
	})
	if err != nil {
		t.Fatalf("seller revise: %v", err)
	}
	if revised.Status != enums.QuoteStatusResponded {
		t.Fatalf("expected responded, got %s", revised.Status)
	}
	if !revised.Items[0].PricePerUnit.Equal(decimal.RequireFromString("11.00")) {
		t.Fatalf("expected revised price, got %v", revised.Items[0].PricePerUnit)
	}
}

func TestUnmatchedItemPriceUpdatesAreIgnored(t *testing.T) {
	quote := quoteInStatus(enums.QuoteStatusRequested)
	svc := newTestService(t, newStubRepo(quote), nil)

	before := *quote.Items[0].PricePerUnit
	responded, err := svc.SellerRespond(context.Background(), RespondInput{
		QuoteID: quote.ID,
		ItemPrices: []ItemPriceUpdate{
			{ItemID: uuid.New(), PricePerUnit: decimal.RequireFromString("99.99")},
		},
	})
	if err != nil {
		t.Fatalf("expected stale item id to be ignored, got %v", err)
	}
	if responded.Status != enums.QuoteStatusResponded {
		t.Fatalf("expected responded, got %s", responded.Status)
	}
	if !responded.Items[0].PricePerUnit.Equal(before) {
		t.Fatalf("expected untouched price %s, got %s", before, responded.Items[0].PricePerUnit)
	}
}

func TestBuyerAcceptCreatesOrderAtomically(t *testing.T) {
	quote := quoteInStatus(enums.QuoteStatusResponded)
	creator := &stubOrderCreator{}
	svc := newTestService(t, newStubRepo(quote), creator)

	accepted, err := svc.BuyerAccept(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("buyer accept: %v", err)
	}
	if accepted.Status != enums.QuoteStatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}
	if accepted.IsActive {
		t.Fatal("accepted quote must be inactive")
	}
	if len(creator.created) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(creator.created))
	}
	order := creator.created[0]
	if accepted.PurchaseOrderID == nil || *accepted.PurchaseOrderID != order.ID {
		t.Fatal("expected quote to back-reference the created order")
	}
	if len(order.Items) != len(quote.Items) {
		t.Fatalf("expected %d order items, got %d", len(quote.Items), len(order.Items))
	}
	if !order.Items[0].PricePerUnit.Equal(*quote.Items[0].PricePerUnit) {
		t.Fatal("expected the negotiated price to be frozen onto the order")
	}
	if !order.Subtotal().Equal(accepted.Subtotal()) {
		t.Fatalf("expected matching subtotals, order=%s quote=%s", order.Subtotal(), accepted.Subtotal())
	}
}

func TestDeclineAndCancelAreUnconditional(t *testing.T) {
	for _, status := range []enums.QuoteStatus{
		enums.QuoteStatusNoRequest,
		enums.QuoteStatusNew,
		enums.QuoteStatusRequested,
		enums.QuoteStatusResponded,
		enums.QuoteStatusAccepted,
	} {
		declineQuote := quoteInStatus(status)
		svc := newTestService(t, newStubRepo(declineQuote), nil)
		declined, err := svc.SellerDecline(context.Background(), declineQuote.ID)
		if err != nil {
			t.Fatalf("decline from %s: %v", status, err)
		}
		if declined.Status != enums.QuoteStatusDeclined || declined.IsActive {
			t.Fatalf("expected inactive declined quote from %s", status)
		}

		cancelQuote := quoteInStatus(status)
		svc = newTestService(t, newStubRepo(cancelQuote), nil)
		cancelled, err := svc.Cancel(context.Background(), cancelQuote.ID)
		if err != nil {
			t.Fatalf("cancel from %s: %v", status, err)
		}
		if cancelled.Status != enums.QuoteStatusCancelled || cancelled.IsActive {
			t.Fatalf("expected inactive cancelled quote from %s", status)
		}
	}
}

func TestConcurrentSaveMapsToConflict(t *testing.T) {
	quote := quoteInStatus(enums.QuoteStatusNew)
	repo := newStubRepo(quote)
	repo.saveErr = ErrStaleAggregate
	svc := newTestService(t, repo, nil)

	_, err := svc.BuyerRequest(context.Background(), quote.ID)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestMissingQuoteMapsToNotFound(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	_, err := svc.Activate(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
