package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"route-shop-service/internal/api/dto"
	"route-shop-service/internal/ports"
	"route-shop-service/internal/services"
)

// ShopHandler exposes route-constrained shop discovery.
type ShopHandler struct {
	Discovery          *services.Discovery
	DefaultMaxDetourKm float64
	Logger             *zap.Logger
}

// Discover lists the shops reachable within the trip's detour budget.
func (h *ShopHandler) Discover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DiscoverRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	origin, msg := point(req.Origin)
	if msg != "" {
		writeError(h.Logger, w, r, http.StatusBadRequest, "origin: "+msg)
		return
	}
	destination, msg := point(req.Destination)
	if msg != "" {
		writeError(h.Logger, w, r, http.StatusBadRequest, "destination: "+msg)
		return
	}

	maxDetour := req.MaxDetourKm
	if maxDetour == 0 {
		maxDetour = h.DefaultMaxDetourKm
	}
	if maxDetour < 0 {
		writeError(h.Logger, w, r, http.StatusBadRequest, "max_detour_km must be non-negative")
		return
	}

	allowed, msg := storeTypes(req.AllowedTypes)
	if msg != "" {
		writeError(h.Logger, w, r, http.StatusBadRequest, msg)
		return
	}
	mode, msg := travelMode(req.TravelMode)
	if msg != "" {
		writeError(h.Logger, w, r, http.StatusBadRequest, msg)
		return
	}

	found, err := h.Discovery.DiscoverShops(r.Context(), origin, destination, maxDetour, allowed, mode)
	if err != nil {
		if errors.Is(err, ports.ErrNoRouteFound) {
			writeError(h.Logger, w, r, http.StatusUnprocessableEntity, "no route between origin and destination")
			return
		}
		h.Logger.Error("shop discovery failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.DiscoverResponse{
		Candidates:       make([]dto.CandidateResponse, 0, len(found.Candidates)),
		TotalDistanceKm:  found.TotalDistanceKm,
		TotalDurationMin: found.TotalDurationMin,
		UsedFallback:     found.UsedFallback,
	}
	for _, v := range found.Candidates {
		res.Candidates = append(res.Candidates, candidateResponse(v))
	}

	writeJSON(h.Logger, w, r, http.StatusOK, res)
}
