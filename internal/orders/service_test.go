package orders

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
	orders    map[uuid.UUID]*models.PurchaseOrder
	shipments []*models.Shipment
	saveErr   error
}

func newStubRepo(orders ...*models.PurchaseOrder) *stubRepo {
	repo := &stubRepo{orders: make(map[uuid.UUID]*models.PurchaseOrder)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, order *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubRepo) Save(ctx context.Context, order *models.PurchaseOrder) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.orders[order.ID] = order
	order.Version++
	return nil
}

func (s *stubRepo) CreateShipment(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error) {
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	s.shipments = append(s.shipments, shipment)
	return shipment, nil
}

func (s *stubRepo) List(ctx context.Context, params ListParams) (*List, error) {
	var out []models.PurchaseOrder
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return &List{Orders: out}, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func orderInStatus(status enums.PurchaseOrderStatus) *models.PurchaseOrder {
	return &models.PurchaseOrder{
		ID:             uuid.New(),
		Number:         "PO-test",
		BuyerTenantID:  uuid.New(),
		SellerTenantID: uuid.New(),
		Status:         status,
		IsActive:       true,
		Currency:       enums.CurrencyUSD,
	}
}

func TestLinearFulfillmentChain(t *testing.T) {
	order := orderInStatus(enums.PurchaseOrderStatusNew)
	repo := newStubRepo(order)
	svc := newTestService(t, repo)
	ctx := context.Background()

	steps := []struct {
		run    func() (*models.PurchaseOrder, error)
		expect enums.PurchaseOrderStatus
	}{
		{func() (*models.PurchaseOrder, error) { return svc.Accept(ctx, order.ID) }, enums.PurchaseOrderStatusAccepted},
		{func() (*models.PurchaseOrder, error) { return svc.Start(ctx, order.ID) }, enums.PurchaseOrderStatusInProgress},
		{func() (*models.PurchaseOrder, error) { return svc.Invoice(ctx, order.ID) }, enums.PurchaseOrderStatusInvoiced},
		{func() (*models.PurchaseOrder, error) { return svc.Ship(ctx, order.ID) }, enums.PurchaseOrderStatusShipped},
		{func() (*models.PurchaseOrder, error) { return svc.ReceivePayment(ctx, order.ID) }, enums.PurchaseOrderStatusPaymentReceived},
		{func() (*models.PurchaseOrder, error) { return svc.Complete(ctx, order.ID) }, enums.PurchaseOrderStatusCompleted},
	}
	for _, step := range steps {
		got, err := step.run()
		if err != nil {
			t.Fatalf("advancing to %s: %v", step.expect, err)
		}
		if got.Status != step.expect {
			t.Fatalf("expected %s, got %s", step.expect, got.Status)
		}
	}
}

func TestEveryStepRejectsWrongPredecessor(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		from  enums.PurchaseOrderStatus
		apply func(Service, uuid.UUID) (*models.PurchaseOrder, error)
	}{
		{"accept", enums.PurchaseOrderStatusShipped, func(s Service, id uuid.UUID) (*models.PurchaseOrder, error) { return s.Accept(ctx, id) }},
		{"start", enums.PurchaseOrderStatusNew, func(s Service, id uuid.UUID) (*models.PurchaseOrder, error) { return s.Start(ctx, id) }},
		{"invoice", enums.PurchaseOrderStatusNew, func(s Service, id uuid.UUID) (*models.PurchaseOrder, error) { return s.Invoice(ctx, id) }},
		{"ship", enums.PurchaseOrderStatusAccepted, func(s Service, id uuid.UUID) (*models.PurchaseOrder, error) { return s.Ship(ctx, id) }},
		{"receive_payment", enums.PurchaseOrderStatusInvoiced, func(s Service, id uuid.UUID) (*models.PurchaseOrder, error) { return s.ReceivePayment(ctx, id) }},
		{"complete", enums.PurchaseOrderStatusShipped, func(s Service, id uuid.UUID) (*models.PurchaseOrder, error) { return s.Complete(ctx, id) }},
	}
	for _, tc := range cases {
		order := orderInStatus(tc.from)
		svc := newTestService(t, newStubRepo(order))

		_, err := tc.apply(svc, order.ID)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("%s from %s: expected STATE_CONFLICT, got %v", tc.name, tc.from, err)
		}
	}
}

func TestTransitionErrorNamesBothStates(t *testing.T) {
	order := orderInStatus(enums.PurchaseOrderStatusNew)
	svc := newTestService(t, newStubRepo(order))

	_, err := svc.Ship(context.Background(), order.ID)
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected state details, got %T", appErr.Details())
	}
	if details["current_status"] != "new" || details["target_status"] != "shipped" {
		t.Fatalf("expected new->shipped in details, got %v", details)
	}
}

func TestCancelIsUnconditionalAndDeactivates(t *testing.T) {
	for _, status := range []enums.PurchaseOrderStatus{
		enums.PurchaseOrderStatusNew,
		enums.PurchaseOrderStatusInProgress,
		enums.PurchaseOrderStatusShipped,
		enums.PurchaseOrderStatusCompleted,
	} {
		order := orderInStatus(status)
		svc := newTestService(t, newStubRepo(order))

		cancelled, err := svc.Cancel(context.Background(), order.ID)
		if err != nil {
			t.Fatalf("cancel from %s: %v", status, err)
		}
		if cancelled.Status != enums.PurchaseOrderStatusCancelled {
			t.Fatalf("expected cancelled, got %s", cancelled.Status)
		}
		if cancelled.IsActive {
			t.Fatal("cancelled order must be inactive")
		}
	}
}

func TestVocabularyOnlyStatesAreUnreachable(t *testing.T) {
	if err := validateTransition(enums.PurchaseOrderStatusNew, enums.PurchaseOrderStatusDeclined); err == nil {
		t.Fatal("declined must not be reachable")
	}
	if err := validateTransition(enums.PurchaseOrderStatusInProgress, enums.PurchaseOrderStatusBackOrdered); err == nil {
		t.Fatal("back_ordered must not be reachable")
	}
}

func TestBuildFromQuoteCopiesLinesAndFreezesPrices(t *testing.T) {
	price1 := decimal.RequireFromString("4.25")
	price2 := decimal.RequireFromString("7.00")
	quote := &models.QuoteRequest{
		ID:             uuid.New(),
		BuyerTenantID:  uuid.New(),
		SellerTenantID: uuid.New(),
		WarehouseID:    uuid.New(),
		DeliveryTermID: uuid.New(),
		PaymentTermID:  uuid.New(),
		PaymentModeID:  uuid.New(),
		ShippingCost:   decimal.RequireFromString("12.00"),
		Currency:       enums.CurrencyEUR,
		Status:         enums.QuoteStatusResponded,
		Items: []models.QuoteRequestItem{
			{ID: uuid.New(), ProductID: uuid.New(), UnitCount: 3, TotalQuantity: decimal.RequireFromString("30"), PricePerUnit: &price1, Currency: enums.CurrencyEUR},
			{ID: uuid.New(), ProductID: uuid.New(), UnitCount: 1, TotalQuantity: decimal.RequireFromString("5"), PricePerUnit: &price2, Currency: enums.CurrencyEUR},
		},
	}

	order := BuildFromQuote(quote)

	if order.Status != enums.PurchaseOrderStatusNew {
		t.Fatalf("expected new, got %s", order.Status)
	}
	if !order.IsActive {
		t.Fatal("new order must be active")
	}
	if order.QuoteRequestID == nil || *order.QuoteRequestID != quote.ID {
		t.Fatal("expected the quote back-reference")
	}
	if order.BuyerTenantID != quote.BuyerTenantID || order.SellerTenantID != quote.SellerTenantID {
		t.Fatal("expected parties copied from quote")
	}
	if order.WarehouseID != quote.WarehouseID || order.DeliveryTermID != quote.DeliveryTermID ||
		order.PaymentTermID != quote.PaymentTermID || order.PaymentModeID != quote.PaymentModeID {
		t.Fatal("expected commercial terms copied from quote")
	}
	if !order.ShippingCost.Equal(quote.ShippingCost) || order.Currency != quote.Currency {
		t.Fatal("expected shipping and currency copied from quote")
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	for i, item := range order.Items {
		source := quote.Items[i]
		if item.ProductID != source.ProductID || item.UnitCount != source.UnitCount {
			t.Fatalf("item %d: expected product copy", i)
		}
		if !item.TotalQuantity.Equal(source.TotalQuantity) {
			t.Fatalf("item %d: expected quantity copy", i)
		}
		if item.PricePerUnit == nil || !item.PricePerUnit.Equal(*source.PricePerUnit) {
			t.Fatalf("item %d: expected frozen price", i)
		}
	}
	if !order.Subtotal().Equal(quote.Subtotal()) {
		t.Fatalf("expected matching subtotals, got order=%s quote=%s", order.Subtotal(), quote.Subtotal())
	}
	if order.Number == "" || order.Number[:3] != "PO-" {
		t.Fatalf("expected a PO number, got %q", order.Number)
	}
}

func TestCreateFromQuoteRequiresRespondedStatus(t *testing.T) {
	repo := newStubRepo()
	creator := NewCreator(repo)

	quote := &models.QuoteRequest{ID: uuid.New(), Status: enums.QuoteStatusRequested}
	_, err := creator.CreateFromQuote(context.Background(), nil, quote)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
}

func TestAddShipmentAttachesToOrder(t *testing.T) {
	order := orderInStatus(enums.PurchaseOrderStatusShipped)
	repo := newStubRepo(order)
	svc := newTestService(t, repo)

	carrier := "DHL"
	shipment, err := svc.AddShipment(context.Background(), ShipmentInput{
		OrderID: order.ID,
		Carrier: &carrier,
	})
	if err != nil {
		t.Fatalf("add shipment: %v", err)
	}
	if shipment.PurchaseOrderID != order.ID {
		t.Fatal("expected shipment bound to order")
	}
	if len(repo.shipments) != 1 {
		t.Fatalf("expected one stored shipment, got %d", len(repo.shipments))
	}
}

func TestConcurrentSaveMapsToConflict(t *testing.T) {
	order := orderInStatus(enums.PurchaseOrderStatusNew)
	repo := newStubRepo(order)
	repo.saveErr = ErrStaleAggregate
	svc := newTestService(t, repo)

	_, err := svc.Accept(context.Background(), order.ID)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestMissingOrderMapsToNotFound(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, err := svc.Accept(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
