package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

// TripPlanRequest is everything needed to plan one shopping trip.
type TripPlanRequest struct {
	Origin       domain.RoutePoint
	Destination  domain.RoutePoint
	MaxDetourKm  float64
	AllowedTypes []domain.StoreType
	TravelMode   ports.TravelMode
	Pinned       []PinnedGroup
	Global       []GlobalSelection
}

// TripPlan pairs the assignment result with the discovery run that fed it.
type TripPlan struct {
	Discovery *DiscoveryResult
	Result    *PlanResult
}

// PlanTrip runs the full planning pipeline: discover candidate vendors along
// the trip, resolve pinned vendors against the same geometry, resolve the
// item catalog, and assign every item to a shop.
//
// A fresh plan is built on every call; nothing is shared between concurrent
// requests and nothing is persisted.
func PlanTrip(
	ctx context.Context,
	req TripPlanRequest,
	discovery *Discovery,
	shops ports.ShopRepository,
	items ports.ItemRepository,
	newVendorID VendorIDGenerator,
	logger *zap.Logger,
) (*TripPlan, error) {
	allowedTypes := req.AllowedTypes
	if len(allowedTypes) == 0 {
		allowedTypes = domain.AllStoreTypes()
	}
	mode := req.TravelMode
	if mode == "" {
		mode = ports.ModeDriving
	}

	found, err := discovery.DiscoverShops(ctx, req.Origin, req.Destination, req.MaxDetourKm, allowedTypes, mode)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	pinnedVendors, err := resolvePinnedVendors(ctx, req.Pinned, found, shops)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	catalog, err := resolveCatalog(ctx, req, items)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	result := PlanAssignments(PlanRequest{
		Pinned:        req.Pinned,
		Global:        req.Global,
		Candidates:    found.Candidates,
		PinnedVendors: pinnedVendors,
		MaxDetourKm:   req.MaxDetourKm,
		Catalog:       catalog,
	}, newVendorID, logger)

	return &TripPlan{Discovery: found, Result: result}, nil
}

// resolvePinnedVendors measures every pinned vendor against the trip, beyond
// the budget included: the planner decides which groups survive. Inactive or
// unknown vendors stay unresolved and their groups get dropped there.
func resolvePinnedVendors(
	ctx context.Context,
	pinned []PinnedGroup,
	found *DiscoveryResult,
	shops ports.ShopRepository,
) (map[string]domain.CandidateVendor, error) {
	if len(pinned) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(pinned))
	for _, group := range pinned {
		ids = append(ids, group.VendorID)
	}

	records, err := shops.GetShopsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve pinned vendors: %w", err)
	}

	vendors := make(map[string]domain.CandidateVendor, len(records))
	for id, shop := range records {
		if !shop.Active {
			continue
		}
		vendors[id] = found.Measure(shop)
	}
	return vendors, nil
}

func resolveCatalog(
	ctx context.Context,
	req TripPlanRequest,
	items ports.ItemRepository,
) (map[string]domain.CatalogItem, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(req.Global))

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, group := range req.Pinned {
		for _, iq := range group.Items {
			add(iq.ItemID)
		}
	}
	for _, sel := range req.Global {
		add(sel.ItemID)
	}

	if len(ids) == 0 {
		return map[string]domain.CatalogItem{}, nil
	}

	catalog, err := items.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve item catalog: %w", err)
	}
	return catalog, nil
}
