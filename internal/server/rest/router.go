package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter registers the shop routes and the middleware stack.
func NewRouter(d Deps) http.Handler {
	h := newHandler(d)

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.instrumentMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(middleware.StripSlashes)

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(h.limiter.Middleware(h.loginLimited))
		r.Get("/token", h.login)
		r.Post("/token", h.login)
	})

	r.Post("/users", h.registerUser)
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/products/{id}/image", h.productImage)

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)

		r.Get("/users/me", h.me)
		r.Delete("/users/me", h.deleteMe)
		r.Get("/users/{id}", h.getUser)

		r.Post("/products", h.createProduct)
		r.Put("/products/{id}", h.updateProduct)
		r.Delete("/products/{id}", h.deleteProduct)
		r.Post("/products/{id}/image", h.uploadProductImage)

		r.Get("/cart", h.listCart)
		r.Post("/cart", h.addToCart)

		r.Post("/orders", h.placeOrder)
		r.Get("/orders", h.listMyOrders)
		r.Get("/orders/all", h.listAllOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Put("/orders/{id}/status", h.updateOrderStatus)

		r.Post("/inquiries", h.createInquiry)
		r.Get("/inquiries", h.listInquiries)
		r.Get("/inquiries/{id}", h.getInquiry)
	})

	return r
}
