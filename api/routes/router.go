package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumina-retail/storefront-backend/api/controllers"
	"github.com/lumina-retail/storefront-backend/api/middleware"
	"github.com/lumina-retail/storefront-backend/internal/admin"
	"github.com/lumina-retail/storefront-backend/internal/adminauth"
	"github.com/lumina-retail/storefront-backend/internal/cart"
	"github.com/lumina-retail/storefront-backend/internal/catalog"
	"github.com/lumina-retail/storefront-backend/internal/checkout"
	"github.com/lumina-retail/storefront-backend/internal/orders"
	"github.com/lumina-retail/storefront-backend/internal/search"
	"github.com/lumina-retail/storefront-backend/pkg/config"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Pingers     map[string]controllers.Pinger
	Registry    *prometheus.Registry
	Carts       *cart.Store
	Catalog     *catalog.Cache
	Search      *search.State
	Checkout    *checkout.Flow
	LastOrders  *orders.LastOrderStore
	AdminAuth   *adminauth.Service
	Admin       *admin.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Carts, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, logg))
			r.Post("/items", controllers.CartAddItem(deps.Carts, deps.Catalog, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(deps.Carts, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Carts, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Catalog, deps.Search, logg))
			r.Post("/refresh", controllers.ProductsRefresh(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductFetch(deps.Catalog, logg))
		})

		r.Route("/search", func(r chi.Router) {
			r.Put("/", controllers.SearchSet(deps.Search, logg))
			r.Delete("/", controllers.SearchClear(deps.Search, logg))
		})

		r.Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, logg))
		r.Get("/orders/last", controllers.OrdersLast(deps.LastOrders, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AdminLogin(deps.AdminAuth, logg))
			r.Post("/logout", controllers.AdminLogout(deps.AdminAuth, logg))
			r.Get("/me", controllers.AdminProfile(deps.AdminAuth, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductsList(deps.Admin, logg))
			r.Post("/", controllers.AdminProductCreate(deps.Admin, logg))
			r.Get("/{productId}", controllers.AdminProductFetch(deps.Admin, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(deps.Admin, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.Admin, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUsersList(deps.Admin, logg))
			r.Post("/", controllers.AdminUserCreate(deps.Admin, logg))
			r.Get("/{userId}", controllers.AdminUserFetch(deps.Admin, logg))
			r.Put("/{userId}", controllers.AdminUserUpdate(deps.Admin, logg))
			r.Delete("/{userId}", controllers.AdminUserDelete(deps.Admin, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(deps.Admin, logg))
			r.Get("/statuses", controllers.AdminOrderStatuses(deps.Admin, logg))
			r.Get("/{orderId}", controllers.AdminOrderFetch(deps.Admin, logg))
			r.Get("/{orderId}/status-history", controllers.AdminOrderStatusHistory(deps.Admin, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderStatusUpdate(deps.Admin, logg))
		})

		r.Get("/audit-logs", controllers.AdminAuditLogsList(deps.Admin, logg))
	})

	return r
}
