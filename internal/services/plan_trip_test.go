package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"route-shop-service/internal/adapters/repositories"
	"route-shop-service/internal/adapters/routing"
	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

func TestPlanTripEndToEnd(t *testing.T) {
	shops := &repositories.MockShopRepository{
		Shops: []domain.ShopRecord{
			{
				ID: "grocer", Name: "Nandini Fresh Mart", Type: domain.StoreGrocery, Active: true,
				Coordinate: domain.Coordinate{Lat: 12.925, Lng: 77.625},
				Categories: []string{"grocery", "dairy"},
			},
			{
				ID: "pharmacy", Name: "Apollo Pharmacy", Type: domain.StorePharmacy, Active: true,
				Coordinate: domain.Coordinate{Lat: 12.94, Lng: 77.64},
				Categories: []string{"medicine"},
			},
		},
	}
	items := &repositories.MockItemRepository{Items: map[string]domain.CatalogItem{
		"item-onion": {ID: "item-onion", Name: "Onion 1kg", Category: "grocery", Price: 42},
		"item-milk":  {ID: "item-milk", Name: "Milk 1L", Category: "dairy", Price: 50},
		"item-soap":  {ID: "item-soap", Name: "Bath Soap", Category: "toiletries", Price: 35},
	}}
	discovery := &Discovery{
		Shops: shops,
		// Provider down: the straight-line fallback covers the trip.
		Provider: &routing.MockRouteProvider{Err: ports.ErrProviderUnavailable},
		Logger:   zap.NewNop(),
	}

	req := TripPlanRequest{
		Origin:      domain.RoutePoint{Coordinate: tripOrigin, Address: "BTM Layout"},
		Destination: domain.RoutePoint{Coordinate: tripDestination, Address: "HSR Layout"},
		MaxDetourKm: 2,
		Pinned: []PinnedGroup{{
			VendorID: "grocer",
			Items:    []ItemQuantity{{ItemID: "item-onion", Quantity: 2}},
		}},
		Global: []GlobalSelection{
			{ItemID: "item-milk", Quantity: 1},
			{ItemID: "item-soap", Quantity: 1},
		},
	}

	plan, err := PlanTrip(context.Background(), req, discovery, shops, items, func(string) string { return "synthetic-1" }, zap.NewNop())
	require.NoError(t, err)

	require.True(t, plan.Discovery.UsedFallback)
	require.Empty(t, plan.Result.Dropped)

	// Milk consolidates into the pinned grocer; soap has no vendor anywhere
	// and lands with a fabricated supplier.
	require.Equal(t, 2, plan.Result.Plan.Len())
	entries := plan.Result.Plan.Entries()
	require.Equal(t, "grocer", entries[0].Vendor.ID)
	require.Len(t, entries[0].Items, 2)
	require.Equal(t, "synthetic-1", entries[1].Vendor.ID)
	require.True(t, entries[1].Vendor.Synthetic)

	require.Equal(t, 2, plan.Result.Plan.AssignedQuantity("item-onion"))
	require.Equal(t, 1, plan.Result.Plan.AssignedQuantity("item-milk"))
	require.Equal(t, 1, plan.Result.Plan.AssignedQuantity("item-soap"))
}

func TestPlanTripDropsInactivePinnedVendor(t *testing.T) {
	shops := &repositories.MockShopRepository{
		Shops: []domain.ShopRecord{{
			ID: "closed", Name: "Lakshmi Medicals", Type: domain.StoreMedical, Active: false,
			Coordinate: domain.Coordinate{Lat: 12.92, Lng: 77.62},
			Categories: []string{"medicine"},
		}},
	}
	items := &repositories.MockItemRepository{Items: map[string]domain.CatalogItem{
		"item-pills": {ID: "item-pills", Name: "Paracetamol", Category: "medicine", Price: 28.5},
	}}
	discovery := &Discovery{
		Shops:    shops,
		Provider: &routing.MockRouteProvider{Err: ports.ErrProviderUnavailable},
		Logger:   zap.NewNop(),
	}

	req := TripPlanRequest{
		Origin:      domain.RoutePoint{Coordinate: tripOrigin},
		Destination: domain.RoutePoint{Coordinate: tripDestination},
		MaxDetourKm: 2,
		Pinned: []PinnedGroup{{
			VendorID: "closed",
			Items:    []ItemQuantity{{ItemID: "item-pills", Quantity: 1}},
		}},
	}

	plan, err := PlanTrip(context.Background(), req, discovery, shops, items, nil, zap.NewNop())
	require.NoError(t, err)

	require.Equal(t, 0, plan.Result.Plan.Len())
	require.Len(t, plan.Result.Dropped, 1)
	require.Equal(t, "closed", plan.Result.Dropped[0].VendorID)
	require.Equal(t, "vendor could not be resolved", plan.Result.Dropped[0].Reason)
}
