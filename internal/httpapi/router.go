package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Carts     CartService
	Wishlist  WishlistService
	Addresses AddressService
	Catalog   Catalog
	Geo       GeoLookup
	Checkout  CheckoutService
	Orders    OrdersReader
}

// NewRouter builds the full API surface. Products, geo lookups and the
// health check are public; everything session-scoped sits behind the
// session middleware.
func NewRouter(h Handlers, timeout time.Duration, logger *zap.Logger) *chi.Mux {
	cartHandler := NewCartHandler(h.Carts, timeout)
	wishlistHandler := NewWishlistHandler(h.Wishlist, timeout)
	addressHandler := NewAddressHandler(h.Addresses, timeout)
	productHandler := NewProductHandler(h.Catalog, timeout)
	geoHandler := NewGeoHandler(h.Geo, timeout)
	checkoutHandler := NewCheckoutHandler(h.Checkout, timeout)
	ordersHandler := NewOrdersHandler(h.Orders, timeout)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{product_id}", productHandler.Get)
		})

		r.Route("/geo", func(r chi.Router) {
			r.Get("/states", geoHandler.States)
			r.Get("/lgas", geoHandler.LGAs)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
				r.Delete("/", cartHandler.ClearCart)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.List)
				r.Post("/items", wishlistHandler.Add)
				r.Delete("/items/{product_id}", wishlistHandler.Remove)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", addressHandler.List)
				r.Post("/", addressHandler.Add)
				r.Get("/default", addressHandler.GetDefault)
				r.Put("/{address_id}", addressHandler.Update)
				r.Delete("/{address_id}", addressHandler.Delete)
				r.Put("/{address_id}/default", addressHandler.SetDefault)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/status", checkoutHandler.GetStatus)
				r.Get("/form", checkoutHandler.GetForm)
				r.Put("/form", checkoutHandler.SaveForm)
				r.Post("/direct-item", checkoutHandler.SetDirectItem)
				r.Post("/quote", checkoutHandler.Quote)
				r.Post("/bank-transfer", checkoutHandler.StartBankTransfer)
				r.Post("/bank-transfer/confirm", checkoutHandler.ConfirmBankTransfer)
				r.Post("/submit", checkoutHandler.Submit)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordersHandler.List)
				r.Get("/{order_id}", ordersHandler.Get)
			})
		})
	})

	return r
}
