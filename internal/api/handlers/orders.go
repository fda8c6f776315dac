package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"route-shop-service/internal/api/dto"
	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
	"route-shop-service/internal/services"
)

// OrderHandler places orders and tracks vendor portion progress.
type OrderHandler struct {
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

// Create re-runs planning for the submitted trip and persists the outcome
// as a multi-vendor order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OrderRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	svcReq, msg := tripPlanRequest(req.PlanRequest, h.DefaultMaxDetourKm)
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

	trip := services.TripInfo{
		StartAddress:       svcReq.Origin.Address,
		DestinationAddress: svcReq.Destination.Address,
	}

	order, err := h.Aggregator.Aggregate(r.Context(), plan.Result.Plan, trip, h.Fees)
	if err != nil {
		if errors.Is(err, services.ErrEmptyPlan) {
			writeError(h.Logger, w, r, http.StatusUnprocessableEntity, "no items could be assigned for this trip")
			return
		}
		h.Logger.Error("order aggregation failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Logger, w, r, http.StatusCreated, orderResponse(order, plan.Result.Dropped))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	order, err := h.Orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ports.ErrOrderNotFound) {
			writeError(h.Logger, w, r, http.StatusNotFound, "order not found")
			return
		}
		h.Logger.Error("order lookup failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Logger, w, r, http.StatusOK, orderResponse(order, nil))
}

// UpdatePortion advances one vendor's portion through its status machine and
// persists the refreshed order.
func (h *OrderHandler) UpdatePortion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.Header().Set("Allow", http.MethodPatch)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PortionUpdateRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	next := domain.PortionStatus(req.Status)
	if !knownPortionStatus(next) {
		writeError(h.Logger, w, r, http.StatusBadRequest, "unknown portion status: "+req.Status)
		return
	}

	orderID := r.PathValue("id")
	vendorID := r.PathValue("vendorId")

	order, err := h.Orders.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, ports.ErrOrderNotFound) {
			writeError(h.Logger, w, r, http.StatusNotFound, "order not found")
			return
		}
		h.Logger.Error("order lookup failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := order.TransitionPortion(vendorID, next); err != nil {
		writeError(h.Logger, w, r, http.StatusConflict, err.Error())
		return
	}

	if err := h.Orders.UpdateOrder(r.Context(), order); err != nil {
		h.Logger.Error("order update failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(h.Logger, w, r, http.StatusOK, orderResponse(order, nil))
}

func knownPortionStatus(s domain.PortionStatus) bool {
	switch s {
	case domain.PortionNew, domain.PortionPreparing, domain.PortionReadyForPickup,
		domain.PortionPickedUp, domain.PortionCancelled:
		return true
	}
	return false
}
