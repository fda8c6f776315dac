package api

import (
	"net/http"

	"go.uber.org/zap"

	"route-shop-service/internal/api/handlers"
	"route-shop-service/internal/ports"
	"route-shop-service/internal/services"
)

// Deps is everything the HTTP surface needs. Handlers stay unaware of
// concrete adapters; wiring happens here and in cmd/server.
type Deps struct {
	Discovery          *services.Discovery
	Shops              ports.ShopRepository
	Items              ports.ItemRepository
	Orders             ports.OrderRepository
	Aggregator         *services.Aggregator
	NewVendorID        services.VendorIDGenerator
	Fees               services.FeeSchedule
	DefaultMaxDetourKm float64
	Logger             *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Logger: d.Logger}
	shopHandler := &handlers.ShopHandler{
		Discovery:          d.Discovery,
		DefaultMaxDetourKm: d.DefaultMaxDetourKm,
		Logger:             d.Logger,
	}
	planHandler := &handlers.PlanHandler{
		Discovery:          d.Discovery,
		Shops:              d.Shops,
		Items:              d.Items,
		NewVendorID:        d.NewVendorID,
		DefaultMaxDetourKm: d.DefaultMaxDetourKm,
		Logger:             d.Logger,
	}
	orderHandler := &handlers.OrderHandler{
		Discovery:          d.Discovery,
		Shops:              d.Shops,
		Items:              d.Items,
		Orders:             d.Orders,
		Aggregator:         d.Aggregator,
		NewVendorID:        d.NewVendorID,
		Fees:               d.Fees,
		DefaultMaxDetourKm: d.DefaultMaxDetourKm,
		Logger:             d.Logger,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/shops/discover", shopHandler.Discover)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/orders", orderHandler.Create)
	mux.HandleFunc("/orders/{id}", orderHandler.Get)
	mux.HandleFunc("/orders/{id}/portions/{vendorId}", orderHandler.UpdatePortion)

	return loggingMiddleware(d.Logger, mux)
}
