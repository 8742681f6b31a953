package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acedk/steakout-backend/api/controllers"
	"github.com/acedk/steakout-backend/api/middleware"
	"github.com/acedk/steakout-backend/internal/catalog"
	"github.com/acedk/steakout-backend/internal/orders"
	"github.com/acedk/steakout-backend/internal/settings"
	"github.com/acedk/steakout-backend/internal/stock"
	"github.com/acedk/steakout-backend/internal/suppliers"
	"github.com/acedk/steakout-backend/pkg/config"
	"github.com/acedk/steakout-backend/pkg/db"
	"github.com/acedk/steakout-backend/pkg/logger"
	pkgredis "github.com/acedk/steakout-backend/pkg/redis"
)

// Dependencies carries everything the HTTP surface needs.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *pkgredis.Client
	Catalog  catalog.Service
	Orders   orders.Service
	Stock    stock.Service
	Settings settings.Service
	Supplier suppliers.Service
}

// NewRouter assembles the full route tree.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.HealthLive(deps.Config))
	r.Get("/health/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, redisPinger(deps.Redis)))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.ListMenu(deps.Catalog, deps.Logger))
		r.Get("/menu/{id}", controllers.GetMenuItem(deps.Catalog, deps.Logger))

		r.Post("/quote", controllers.QuoteOrder(deps.Orders, deps.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Idempotency(idempotencyStore(deps.Redis), deps.Logger))
			r.Post("/orders", controllers.CreateOrder(deps.Orders, deps.Logger))
		})
		r.Get("/orders", controllers.ListOrders(deps.Orders, deps.Logger))
		r.Get("/orders/{id}", controllers.GetOrder(deps.Orders, deps.Logger))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/orders/{id}/status", controllers.UpdateOrderStatus(deps.Orders, deps.Logger))
			r.Put("/orders/{id}", controllers.UpdateOrder(deps.Orders, deps.Logger))
			r.Delete("/orders/{id}", controllers.DeleteOrder(deps.Orders, deps.Logger))

			r.Get("/stock", controllers.ListStock(deps.Stock, deps.Logger))
			r.Get("/stock/{id}", controllers.GetStockItem(deps.Stock, deps.Logger))
			r.Put("/stock/{id}", controllers.AdjustStock(deps.Stock, deps.Logger))

			r.Get("/suppliers", controllers.ListSuppliers(deps.Supplier, deps.Logger))
			r.Post("/suppliers", controllers.CreateSupplier(deps.Supplier, deps.Logger))
			r.Delete("/suppliers/{id}", controllers.DeleteSupplier(deps.Supplier, deps.Logger))

			r.Get("/settings", controllers.GetSettings(deps.Settings, deps.Logger))
			r.Put("/settings", controllers.UpdateSettings(deps.Settings, deps.Logger))
		})
	})

	return r
}

func redisPinger(client *pkgredis.Client) pkgredis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client *pkgredis.Client) pkgredis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
