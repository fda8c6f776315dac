package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"route-shop-service/internal/api/dto"
	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
	"route-shop-service/internal/services"
)

func writeJSON(logger *zap.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("response encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(logger, w, r, status, map[string]string{"error": msg})
}

// decodeStrict reads exactly one JSON object from the body, rejecting
// unknown fields and trailing content.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingBody
	}
	return nil
}

var errTrailingBody = &bodyError{"body must contain only one JSON object"}

type bodyError struct{ msg string }

func (e *bodyError) Error() string { return e.msg }

// point validates a trip endpoint from the request.
func point(p *dto.PointRequest) (domain.RoutePoint, string) {
	if p == nil || p.Lat == nil || p.Lng == nil {
		return domain.RoutePoint{}, "lat and lng are required"
	}
	if *p.Lat < -90 || *p.Lat > 90 || *p.Lng < -180 || *p.Lng > 180 {
		return domain.RoutePoint{}, "lat must be in [-90,90] and lng in [-180,180]"
	}
	return domain.RoutePoint{
		Coordinate: domain.Coordinate{Lat: *p.Lat, Lng: *p.Lng},
		Address:    p.Address,
	}, ""
}

func storeTypes(raw []string) ([]domain.StoreType, string) {
	out := make([]domain.StoreType, 0, len(raw))
	for _, t := range raw {
		st := domain.StoreType(t)
		if !domain.KnownStoreType(st) {
			return nil, "unknown store type: " + t
		}
		out = append(out, st)
	}
	return out, ""
}

func travelMode(raw string) (ports.TravelMode, string) {
	switch raw {
	case "":
		return ports.ModeDriving, ""
	case string(ports.ModeDriving):
		return ports.ModeDriving, ""
	case string(ports.ModeWalking):
		return ports.ModeWalking, ""
	default:
		return "", "travel_mode must be driving or walking"
	}
}

func candidateResponse(v domain.CandidateVendor) dto.CandidateResponse {
	return dto.CandidateResponse{
		ShopID:               v.ID,
		Name:                 v.Name,
		StoreType:            string(v.Type),
		Lat:                  v.Coordinate.Lat,
		Lng:                  v.Coordinate.Lng,
		Address:              v.Address,
		Categories:           v.Categories,
		DistanceFromRouteKm:  v.DistanceFromRouteKm,
		DetourKm:             v.DetourKm,
		RoutePosition:        v.RoutePosition,
		EstimatedTimeMinutes: v.EstimatedTimeMinutes,
		IsOnRoute:            v.IsOnRoute,
		SupportsListOrdering: services.CapabilitiesOf(v.Type).SupportsListOrdering,
	}
}

func planResponse(plan *domain.AssignmentPlan, dropped []services.DroppedGroup, usedFallback bool) dto.PlanResponse {
	entries := plan.Entries()
	res := dto.PlanResponse{
		Entries:      make([]dto.PlanEntryResponse, 0, len(entries)),
		Dropped:      droppedResponses(dropped),
		Subtotal:     plan.TotalSubtotal(),
		UsedFallback: usedFallback,
	}

	for _, e := range entries {
		items := make([]dto.PlanItemResponse, 0, len(e.Items))
		for _, it := range e.Items {
			items = append(items, dto.PlanItemResponse{
				ItemID:   it.ItemID,
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    it.Price,
			})
		}
		res.Entries = append(res.Entries, dto.PlanEntryResponse{
			VendorID:      e.Vendor.ID,
			VendorName:    e.Vendor.Name,
			VendorAddress: e.Vendor.Address,
			StoreType:     string(e.Vendor.Type),
			DetourKm:      e.Vendor.DetourKm,
			Synthetic:     e.Vendor.Synthetic,
			Items:         items,
			Subtotal:      e.Subtotal,
		})
	}

	return res
}

func droppedResponses(dropped []services.DroppedGroup) []dto.DroppedGroupResponse {
	out := make([]dto.DroppedGroupResponse, 0, len(dropped))
	for _, d := range dropped {
		items := make([]dto.ItemQuantityRequest, 0, len(d.Items))
		for _, iq := range d.Items {
			items = append(items, dto.ItemQuantityRequest{ItemID: iq.ItemID, Quantity: iq.Quantity})
		}
		out = append(out, dto.DroppedGroupResponse{VendorID: d.VendorID, Reason: d.Reason, Items: items})
	}
	return out
}

func orderResponse(o *domain.FinalOrder, dropped []services.DroppedGroup) dto.OrderResponse {
	portions := make([]dto.PortionResponse, 0, len(o.Portions))
	for _, p := range o.Portions {
		items := make([]dto.OrderItemResponse, 0, len(p.Items))
		for _, it := range p.Items {
			items = append(items, dto.OrderItemResponse{
				ItemID:       it.ItemID,
				Name:         it.Name,
				Quantity:     it.Quantity,
				PricePerItem: it.PricePerItem,
				TotalPrice:   it.TotalPrice,
			})
		}
		portions = append(portions, dto.PortionResponse{
			VendorID:      p.VendorID,
			VendorName:    p.VendorName,
			VendorAddress: p.VendorAddress,
			VendorType:    string(p.VendorType),
			Status:        string(p.Status),
			Items:         items,
			Subtotal:      p.Subtotal,
		})
	}

	return dto.OrderResponse{
		OrderID:         o.OrderID,
		TripStart:       o.TripStart,
		TripDestination: o.TripDestination,
		CreatedAt:       o.CreatedAt,
		QuoteDeadline:   o.QuoteDeadline,
		Status:          string(o.Status),
		GrandTotal:      o.GrandTotal,
		PlatformFee:     o.PlatformFee,
		GatewayFee:      o.GatewayFee,
		Portions:        portions,
		Dropped:         droppedResponses(dropped),
	}
}
