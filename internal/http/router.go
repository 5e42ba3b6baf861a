package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/product-catalog/docs"
	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	mw "github.com/rogerio-castellano/product-catalog/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter wires the catalog routes. Products are served both at the root and
// under /api, where the web client expects them.
//
// RemoteAddr is the socket peer unless the caller passes chimw.RealIP in
// middlewares, which must only happen behind a trusted proxy.
func NewRouter(middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(mw.RequestID, mw.AccessLog, chimw.Recoverer)
	r.Use(middlewares...)

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	productRoutes := func(r chi.Router) {
		r.Get("/", handlers.GetProductsHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)
	}
	r.Route("/products", productRoutes)
	r.Route("/api/products", productRoutes)
	return r
}
