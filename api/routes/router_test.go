package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	leadsvc "github.com/rfqhub/rfqhub-backend/internal/leads"
	ordersvc "github.com/rfqhub/rfqhub-backend/internal/orders"
	pricingsvc "github.com/rfqhub/rfqhub-backend/internal/pricing"
	quotesvc "github.com/rfqhub/rfqhub-backend/internal/quotes"
	pkgAuth "github.com/rfqhub/rfqhub-backend/pkg/auth"
	"github.com/rfqhub/rfqhub-backend/pkg/config"
	"github.com/rfqhub/rfqhub-backend/pkg/db/models"
	"github.com/rfqhub/rfqhub-backend/pkg/enums"
	"github.com/rfqhub/rfqhub-backend/pkg/logger"
)

type stubQuotesService struct{}

func (stubQuotesService) Create(ctx context.Context, input quotesvc.CreateInput) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) Activate(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) BuyerRequest(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) SellerRespond(ctx context.Context, input quotesvc.RespondInput) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) BuyerCounter(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) SellerRevise(ctx context.Context, input quotesvc.RespondInput) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) BuyerAccept(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) SellerDecline(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) Cancel(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) Get(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return &models.QuoteRequest{}, nil
}

func (stubQuotesService) ListQuotes(ctx context.Context, params quotesvc.ListParams) (*quotesvc.List, error) {
	return &quotesvc.List{}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) Accept(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return &models.PurchaseOrder{}, nil
}

func (stubOrdersService) Start(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return &models.PurchaseOrder{}, nil
}

func (stubOrdersService) Invoice(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return &models.PurchaseOrder{}, nil
}

func (stubOrdersService) Ship(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return &models.PurchaseOrder{}, nil
}

func (stubOrdersService) ReceivePayment(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return &models.PurchaseOrder{}, nil
}

func (stubOrdersService) Complete(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return &models.PurchaseOrder{}, nil
}

func (stubOrdersService) Cancel(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return &models.PurchaseOrder{}, nil
}

func (stubOrdersService) AddShipment(ctx context.Context, input ordersvc.ShipmentInput) (*models.Shipment, error) {
	return &models.Shipment{}, nil
}

func (stubOrdersService) Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return &models.PurchaseOrder{}, nil
}

func (stubOrdersService) ListOrders(ctx context.Context, params ordersvc.ListParams) (*ordersvc.List, error) {
	return &ordersvc.List{}, nil
}

type stubLeadsService struct{}

func (stubLeadsService) Create(ctx context.Context, input leadsvc.CreateInput) (*models.Lead, error) {
	return &models.Lead{}, nil
}

func (stubLeadsService) Open(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return &models.Lead{}, nil
}

func (stubLeadsService) Convert(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return &models.Lead{}, nil
}

func (stubLeadsService) ForwardToDistributor(ctx context.Context, input leadsvc.ForwardInput) (*models.Lead, error) {
	return &models.Lead{}, nil
}

func (stubLeadsService) DistributorAccept(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return &models.Lead{}, nil
}

func (stubLeadsService) DistributorReject(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return &models.Lead{}, nil
}

func (stubLeadsService) Get(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return &models.Lead{}, nil
}

func (stubLeadsService) Children(ctx context.Context, parentID uuid.UUID) ([]models.Lead, error) {
	return nil, nil
}

func (stubLeadsService) ListLeads(ctx context.Context, params leadsvc.ListParams) (*leadsvc.List, error) {
	return &leadsvc.List{}, nil
}

type stubPricingService struct{}

func (stubPricingService) CalculatePrice(ctx context.Context, query pricingsvc.PriceQuery) (*pricingsvc.Resolution, error) {
	return nil, nil
}

func (stubPricingService) CalculateTotalPrice(ctx context.Context, query pricingsvc.PriceQuery) (*pricingsvc.TotalResolution, error) {
	return nil, nil
}

func (stubPricingService) HasPricing(ctx context.Context, skuID uuid.UUID) (bool, error) {
	return false, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:  cfg,
		Logger:  logg,
		Quotes:  stubQuotesService{},
		Orders:  stubOrdersService{},
		Leads:   stubLeadsService{},
		Pricing: stubPricingService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:     uuid.New(),
		TenantID:   uuid.New(),
		TenantType: enums.TenantTypeBuyer,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAPIRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAPIAcceptsValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestAPIRejectsForeignIssuer(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	other := *cfg
	other.JWT.Issuer = "someone-else"
	token, err := pkgAuth.MintAccessToken(other.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:     uuid.New(),
		TenantID:   uuid.New(),
		TenantType: enums.TenantTypeSeller,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong issuer got %d", resp.Code)
	}
}

func TestPricingResolveRequiresBody(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/resolve", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body got %d", resp.Code)
	}
}
