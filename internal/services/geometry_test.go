package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"route-shop-service/internal/domain"
)

// Trip across south Bengaluru used by the geometry tests.
var (
	tripOrigin      = domain.Coordinate{Lat: 12.90, Lng: 77.60}
	tripDestination = domain.Coordinate{Lat: 12.95, Lng: 77.65}
)

func shopAt(id string, lat, lng float64) domain.ShopRecord {
	return domain.ShopRecord{
		ID:         id,
		Name:       id,
		Type:       domain.StoreGrocery,
		Coordinate: domain.Coordinate{Lat: lat, Lng: lng},
		Active:     true,
	}
}

func TestMeasureAlongSegmentMidpointShop(t *testing.T) {
	shop := shopAt("mid", 12.925, 77.625)

	v := MeasureAlongSegment(shop, tripOrigin, tripDestination)

	require.InDelta(t, 0.5, v.RoutePosition, 1e-9)
	require.InDelta(t, 0, v.DistanceFromRouteKm, 0.01)
	require.True(t, v.IsOnRoute)
	// Detour equals the perpendicular distance for the straight-line path.
	require.Equal(t, v.DistanceFromRouteKm, v.DetourKm)
	require.Greater(t, v.EstimatedTimeMinutes, 0)
}

func TestMeasureAlongSegmentOffsetShop(t *testing.T) {
	// Perpendicular offset of 0.02 degrees from the midpoint, roughly 3.1km.
	shop := shopAt("offset", 12.945, 77.605)

	v := MeasureAlongSegment(shop, tripOrigin, tripDestination)

	require.InDelta(t, 0.5, v.RoutePosition, 1e-9)
	require.Greater(t, v.DistanceFromRouteKm, 2.0)
	require.Less(t, v.DistanceFromRouteKm, 4.0)
	require.False(t, v.IsOnRoute)
}

func TestMeasureAlongSegmentDegenerateTrip(t *testing.T) {
	shop := shopAt("any", 12.91, 77.61)

	v := MeasureAlongSegment(shop, tripOrigin, tripOrigin)

	require.Zero(t, v.RoutePosition)
	require.InDelta(t, tripOrigin.DistanceKm(shop.Coordinate), v.DistanceFromRouteKm, 1e-9)
}

func TestCandidatesAlongSegmentAppliesBudget(t *testing.T) {
	shops := []domain.ShopRecord{
		shopAt("near-mid", 12.925, 77.625),
		shopAt("far-offset", 12.945, 77.605),
	}

	tight := CandidatesAlongSegment(shops, tripOrigin, tripDestination, 2.0)
	require.Len(t, tight, 1)
	require.Equal(t, "near-mid", tight[0].ID)

	// A larger budget admits everything the tight one did, plus the rest.
	loose := CandidatesAlongSegment(shops, tripOrigin, tripDestination, 5.0)
	require.Len(t, loose, 2)
	for _, want := range tight {
		found := false
		for _, got := range loose {
			if got.ID == want.ID {
				found = true
			}
		}
		require.Truef(t, found, "shop %s lost when budget grew", want.ID)
	}
}

func TestCandidatesAlongSegmentPositionMargin(t *testing.T) {
	shops := []domain.ShopRecord{
		// Projects just past the destination, inside the margin.
		shopAt("just-past", 12.955, 77.655),
		// Projects well before the origin, outside the margin.
		shopAt("way-before", 12.885, 77.585),
	}

	got := CandidatesAlongSegment(shops, tripOrigin, tripDestination, 5.0)

	require.Len(t, got, 1)
	require.Equal(t, "just-past", got[0].ID)
	require.Greater(t, got[0].RoutePosition, 1.0)
}

func TestCandidatesAlongSegmentSortedByPosition(t *testing.T) {
	shops := []domain.ShopRecord{
		shopAt("c-late", 12.94, 77.64),
		shopAt("a-early", 12.91, 77.61),
		shopAt("b-mid", 12.925, 77.625),
	}

	got := CandidatesAlongSegment(shops, tripOrigin, tripDestination, 5.0)

	require.Len(t, got, 3)
	require.Equal(t, "a-early", got[0].ID)
	require.Equal(t, "b-mid", got[1].ID)
	require.Equal(t, "c-late", got[2].ID)
}

func TestMeasureAlongPath(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 12.90, Lng: 77.60},
		{Lat: 12.92, Lng: 77.62},
		{Lat: 12.94, Lng: 77.64},
		{Lat: 12.95, Lng: 77.65},
	}
	shop := shopAt("near-second", 12.921, 77.621)

	v, ok := MeasureAlongPath(shop, path)

	require.True(t, ok)
	require.InDelta(t, 1.0/3.0, v.RoutePosition, 1e-9)
	require.InDelta(t, v.DistanceFromRouteKm*2, v.DetourKm, 1e-9)
	require.True(t, v.IsOnRoute)
}

func TestMeasureAlongPathTooShort(t *testing.T) {
	_, ok := MeasureAlongPath(shopAt("x", 12.9, 77.6), []domain.Coordinate{{Lat: 12.9, Lng: 77.6}})
	require.False(t, ok)

	_, ok = MeasureAlongPath(shopAt("x", 12.9, 77.6), nil)
	require.False(t, ok)
}

func TestCandidatesAlongPathSortedByDistance(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 12.90, Lng: 77.60},
		{Lat: 12.925, Lng: 77.625},
		{Lat: 12.95, Lng: 77.65},
	}
	shops := []domain.ShopRecord{
		shopAt("farther", 12.935, 77.625),
		shopAt("closer", 12.926, 77.625),
		shopAt("nowhere-near", 13.10, 77.40),
	}

	got := CandidatesAlongPath(shops, path, 3.0)

	require.Len(t, got, 2)
	require.Equal(t, "closer", got[0].ID)
	require.Equal(t, "farther", got[1].ID)
}
