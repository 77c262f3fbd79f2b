package httpapi

import (
	"net/http"

	"vitrine-be/internal/auth"
	"vitrine-be/internal/catalog"
	"vitrine-be/internal/company"
	"vitrine-be/internal/logger"
	"vitrine-be/internal/middleware"
	"vitrine-be/internal/order"
	"vitrine-be/internal/stats"
	"vitrine-be/internal/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handlers struct {
	users     user.Service
	companies company.Service
	products  catalog.Service
	orders    order.Service
	stats     stats.Service
}

func NewHandlers(
	users user.Service,
	companies company.Service,
	products catalog.Service,
	orders order.Service,
	statsSvc stats.Service,
) *Handlers {
	return &Handlers{
		users:     users,
		companies: companies,
		products:  products,
		orders:    orders,
		stats:     statsSvc,
	}
}

// Router wires the REST surface. Public routes: auth, storefront lookups.
// Everything else requires an authenticated user.
func (h *Handlers) Router(log *zap.Logger, tokens *auth.TokenManager, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.Middleware(log))
	r.Use(middleware.Auth(tokens))
	r.Use(limiter.Middleware)

	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)

	r.Get("/store/{slug}", h.storefront)
	r.Get("/store/{slug}/products", h.storefrontProducts)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/companies", h.createCompany)
		r.Get("/companies", h.listCompanies)
		r.Get("/companies/me", h.myCompany)
		r.Put("/companies/{id}", h.updateCompany)
		r.Post("/companies/domain", h.bindDomain)

		r.Post("/products", h.createProduct)
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Put("/products/{id}", h.updateProduct)

		r.Post("/orders", h.placeOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Put("/orders/{id}/status", h.updateOrderStatus)

		r.Get("/stats/dashboard", h.dashboard)
	})

	return r
}
