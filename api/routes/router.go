package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rfqhub/rfqhub-backend/api/controllers"
	"github.com/rfqhub/rfqhub-backend/api/middleware"
	"github.com/rfqhub/rfqhub-backend/internal/leads"
	"github.com/rfqhub/rfqhub-backend/internal/orders"
	"github.com/rfqhub/rfqhub-backend/internal/pricing"
	"github.com/rfqhub/rfqhub-backend/internal/quotes"
	"github.com/rfqhub/rfqhub-backend/pkg/config"
	"github.com/rfqhub/rfqhub-backend/pkg/db"
	"github.com/rfqhub/rfqhub-backend/pkg/logger"
	"github.com/rfqhub/rfqhub-backend/pkg/metrics"
	"github.com/rfqhub/rfqhub-backend/pkg/redis"
)

// Deps carries everything the router needs to wire handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	Quotes  quotes.Service
	Orders  orders.Service
	Leads   leads.Service
	Pricing pricing.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		if deps.Redis != nil {
			r.Use(middleware.RateLimit(cfg.RateLimit, deps.Redis, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))
		}

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", controllers.QuoteList(deps.Quotes, logg))
			r.Post("/", controllers.QuoteCreate(deps.Quotes, logg))
			r.Get("/{quoteID}", controllers.QuoteGet(deps.Quotes, logg))
			r.Post("/{quoteID}/activate", controllers.QuoteActivate(deps.Quotes, logg))
			r.Post("/{quoteID}/submit", controllers.QuoteSubmit(deps.Quotes, logg))
			r.Post("/{quoteID}/respond", controllers.QuoteRespond(deps.Quotes, logg))
			r.Post("/{quoteID}/counter", controllers.QuoteCounter(deps.Quotes, logg))
			r.Post("/{quoteID}/revise", controllers.QuoteRevise(deps.Quotes, logg))
			r.Post("/{quoteID}/accept", controllers.QuoteAccept(deps.Quotes, logg))
			r.Post("/{quoteID}/decline", controllers.QuoteDecline(deps.Quotes, logg))
			r.Post("/{quoteID}/cancel", controllers.QuoteCancel(deps.Quotes, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(deps.Orders, logg))
			r.Get("/{orderID}", controllers.OrderGet(deps.Orders, logg))
			r.Post("/{orderID}/accept", controllers.OrderAccept(deps.Orders, logg))
			r.Post("/{orderID}/start", controllers.OrderStart(deps.Orders, logg))
			r.Post("/{orderID}/invoice", controllers.OrderInvoice(deps.Orders, logg))
			r.Post("/{orderID}/ship", controllers.OrderShip(deps.Orders, logg))
			r.Post("/{orderID}/payment", controllers.OrderPayment(deps.Orders, logg))
			r.Post("/{orderID}/complete", controllers.OrderComplete(deps.Orders, logg))
			r.Post("/{orderID}/cancel", controllers.OrderCancel(deps.Orders, logg))
			r.Post("/{orderID}/shipments", controllers.OrderAddShipment(deps.Orders, logg))
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", controllers.LeadList(deps.Leads, logg))
			r.Post("/", controllers.LeadCreate(deps.Leads, logg))
			r.Get("/{leadID}", controllers.LeadGet(deps.Leads, logg))
			r.Get("/{leadID}/children", controllers.LeadChildren(deps.Leads, logg))
			r.Post("/{leadID}/open", controllers.LeadOpen(deps.Leads, logg))
			r.Post("/{leadID}/convert", controllers.LeadConvert(deps.Leads, logg))
			r.Post("/{leadID}/forward", controllers.LeadForward(deps.Leads, logg))
			r.Post("/{leadID}/distributor-accept", controllers.LeadDistributorAccept(deps.Leads, logg))
			r.Post("/{leadID}/distributor-reject", controllers.LeadDistributorReject(deps.Leads, logg))
		})

		r.Route("/pricing", func(r chi.Router) {
			r.Post("/resolve", controllers.PricingResolve(deps.Pricing, logg))
			r.Post("/resolve-total", controllers.PricingResolveTotal(deps.Pricing, logg))
			r.Get("/skus/{skuID}/has-pricing", controllers.PricingHasPricing(deps.Pricing, logg))
		})
	})

	return r
}
