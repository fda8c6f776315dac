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

func discoveryFixture(provider ports.RouteProvider) (*Discovery, *repositories.MockShopRepository) {
	shops := &repositories.MockShopRepository{
		Shops: []domain.ShopRecord{
			{
				ID: "grocer", Name: "Nandini Fresh Mart", Type: domain.StoreGrocery, Active: true,
				Coordinate: domain.Coordinate{Lat: 12.925, Lng: 77.625},
				Categories: []string{"grocery"},
			},
			{
				ID: "closed", Name: "Lakshmi Medicals", Type: domain.StoreMedical, Active: false,
				Coordinate: domain.Coordinate{Lat: 12.92, Lng: 77.62},
			},
			{
				ID: "bar", Name: "Toit", Type: domain.StoreBar, Active: true,
				Coordinate: domain.Coordinate{Lat: 12.93, Lng: 77.63},
			},
		},
	}
	return &Discovery{
		Shops:    shops,
		Provider: provider,
		Logger:   zap.NewNop(),
	}, shops
}

func discoverArgs() (domain.RoutePoint, domain.RoutePoint) {
	return domain.RoutePoint{Coordinate: tripOrigin, Address: "BTM Layout"},
		domain.RoutePoint{Coordinate: tripDestination, Address: "HSR Layout"}
}

func TestDiscoverShopsUsesProviderPath(t *testing.T) {
	provider := &routing.MockRouteProvider{
		Result: &ports.RouteResult{
			Legs: []ports.RouteLeg{{DistanceMeters: 8200, DurationSeconds: 1380}},
			OverviewPath: []domain.Coordinate{
				{Lat: 12.90, Lng: 77.60},
				{Lat: 12.925, Lng: 77.625},
				{Lat: 12.95, Lng: 77.65},
			},
		},
	}
	d, _ := discoveryFixture(provider)
	origin, destination := discoverArgs()

	got, err := d.DiscoverShops(context.Background(), origin, destination, 2.0, []domain.StoreType{domain.StoreGrocery}, ports.ModeDriving)
	require.NoError(t, err)

	require.False(t, got.UsedFallback)
	require.Equal(t, 1, provider.Calls)
	require.InDelta(t, 8.2, got.TotalDistanceKm, 1e-9)
	require.InDelta(t, 23.0, got.TotalDurationMin, 1e-9)

	// Type filter removed the bar, the active filter removed the closed shop.
	require.Len(t, got.Candidates, 1)
	require.Equal(t, "grocer", got.Candidates[0].ID)
	require.True(t, got.Candidates[0].IsOnRoute)
}

func TestDiscoverShopsFallsBackOnProviderError(t *testing.T) {
	for _, provErr := range []error{ports.ErrProviderUnavailable, ports.ErrRouteTimeout} {
		d, _ := discoveryFixture(&routing.MockRouteProvider{Err: provErr})
		origin, destination := discoverArgs()

		got, err := d.DiscoverShops(context.Background(), origin, destination, 2.0, nil, ports.ModeDriving)
		require.NoError(t, err)

		require.True(t, got.UsedFallback)
		require.NotEmpty(t, got.Candidates)
		// Straight-line distance between the endpoints stands in for the route.
		require.InDelta(t, tripOrigin.DistanceKm(tripDestination), got.TotalDistanceKm, 1e-9)
	}
}

func TestDiscoverShopsFallsBackOnShortPath(t *testing.T) {
	provider := &routing.MockRouteProvider{
		Result: &ports.RouteResult{OverviewPath: []domain.Coordinate{{Lat: 12.9, Lng: 77.6}}},
	}
	d, _ := discoveryFixture(provider)
	origin, destination := discoverArgs()

	got, err := d.DiscoverShops(context.Background(), origin, destination, 2.0, nil, ports.ModeDriving)
	require.NoError(t, err)
	require.True(t, got.UsedFallback)
}

func TestDiscoverShopsSurfacesNoRoute(t *testing.T) {
	d, _ := discoveryFixture(&routing.MockRouteProvider{Err: ports.ErrNoRouteFound})
	origin, destination := discoverArgs()

	_, err := d.DiscoverShops(context.Background(), origin, destination, 2.0, nil, ports.ModeDriving)
	require.ErrorIs(t, err, ports.ErrNoRouteFound)
}

func TestDiscoveryResultMeasureMatchesGeometryPath(t *testing.T) {
	shop := domain.ShopRecord{
		ID: "grocer", Active: true,
		Coordinate: domain.Coordinate{Lat: 12.925, Lng: 77.625},
	}

	routed := &DiscoveryResult{
		Origin:      tripOrigin,
		Destination: tripDestination,
		OverviewPath: []domain.Coordinate{
			tripOrigin,
			{Lat: 12.925, Lng: 77.625},
			tripDestination,
		},
	}
	want, ok := MeasureAlongPath(shop, routed.OverviewPath)
	require.True(t, ok)
	require.Equal(t, want, routed.Measure(shop))

	fallback := &DiscoveryResult{
		Origin:       tripOrigin,
		Destination:  tripDestination,
		UsedFallback: true,
	}
	require.Equal(t, MeasureAlongSegment(shop, tripOrigin, tripDestination), fallback.Measure(shop))
}

func TestFilterShops(t *testing.T) {
	shops := []domain.ShopRecord{
		{ID: "a", Type: domain.StoreGrocery, Active: true},
		{ID: "b", Type: domain.StoreBar, Active: true},
		{ID: "c", Type: domain.StoreGrocery, Active: false},
	}

	got := FilterShops(shops, []domain.StoreType{domain.StoreGrocery})
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ID)

	// An empty allow-list keeps every active shop.
	all := FilterShops(shops, nil)
	require.Len(t, all, 2)
}

func TestCapabilitiesOf(t *testing.T) {
	require.True(t, CapabilitiesOf(domain.StoreGrocery).SupportsListOrdering)
	require.True(t, CapabilitiesOf(domain.StorePharmacy).SupportsListOrdering)
	require.False(t, CapabilitiesOf(domain.StoreRestaurant).SupportsListOrdering)
	require.False(t, CapabilitiesOf(domain.StoreBar).SupportsListOrdering)
}
