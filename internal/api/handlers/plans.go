package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"route-shop-service/internal/api/dto"
	"route-shop-service/internal/ports"
	"route-shop-service/internal/services"
)

// PlanHandler orchestrates discovery and item assignment for one trip.
type PlanHandler struct {
	Discovery          *services.Discovery
	Shops              ports.ShopRepository
	Items              ports.ItemRepository
	NewVendorID        services.VendorIDGenerator
	DefaultMaxDetourKm float64
	Logger             *zap.Logger
}

func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	svcReq, msg := tripPlanRequest(req, h.DefaultMaxDetourKm)
	if msg != "" {
		writeError(h.Logger, w, r, http.StatusBadRequest, msg)
		return
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Discovery, h.Shops, h.Items, h.NewVendorID, h.Logger)
	if err != nil {
		if errors.Is(err, ports.ErrNoRouteFound) {
			writeError(h.Logger, w, r, http.StatusUnprocessableEntity, "no route between origin and destination")
			return
		}
		h.Logger.Error("trip planning failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Logger, w, r, http.StatusOK,
		planResponse(plan.Result.Plan, plan.Result.Dropped, plan.Discovery.UsedFallback))
}

// tripPlanRequest validates and converts the transport shape into the
// service request. Returns a non-empty message on the first invalid field.
func tripPlanRequest(req dto.PlanRequest, defaultMaxDetourKm float64) (services.TripPlanRequest, string) {
	var out services.TripPlanRequest

	origin, msg := point(req.Origin)
	if msg != "" {
		return out, "origin: " + msg
	}
	destination, msg := point(req.Destination)
	if msg != "" {
		return out, "destination: " + msg
	}

	maxDetour := req.MaxDetourKm
	if maxDetour == 0 {
		maxDetour = defaultMaxDetourKm
	}
	if maxDetour < 0 {
		return out, "max_detour_km must be non-negative"
	}

	allowed, msg := storeTypes(req.AllowedTypes)
	if msg != "" {
		return out, msg
	}
	mode, msg := travelMode(req.TravelMode)
	if msg != "" {
		return out, msg
	}

	if len(req.Pinned) == 0 && len(req.Items) == 0 {
		return out, "at least one pinned group or item is required"
	}

	pinned := make([]services.PinnedGroup, 0, len(req.Pinned))
	for _, g := range req.Pinned {
		if g.VendorID == "" {
			return out, "pinned: vendor_id is required"
		}
		items := make([]services.ItemQuantity, 0, len(g.Items))
		for _, iq := range g.Items {
			items = append(items, services.ItemQuantity{ItemID: iq.ItemID, Quantity: iq.Quantity})
		}
		pinned = append(pinned, services.PinnedGroup{VendorID: g.VendorID, Items: items})
	}

	global := make([]services.GlobalSelection, 0, len(req.Items))
	for _, iq := range req.Items {
		if iq.ItemID == "" {
			return out, "items: item_id is required"
		}
		global = append(global, services.GlobalSelection{ItemID: iq.ItemID, Quantity: iq.Quantity})
	}

	out = services.TripPlanRequest{
		Origin:       origin,
		Destination:  destination,
		MaxDetourKm:  maxDetour,
		AllowedTypes: allowed,
		TravelMode:   mode,
		Pinned:       pinned,
		Global:       global,
	}
	return out, ""
}
