package services

import (
	"math"
	"sort"

	"route-shop-service/internal/domain"
)

// Shops projecting slightly before the origin or past the destination still
// qualify, so near-start and near-end stops are not lost.
const routePositionMargin = 0.2

// "On route" thresholds differ per geometry path: the straight-line fallback
// is coarser than a routed polyline.
const (
	onRouteSegmentKm = 1.0
	onRoutePathKm    = 0.5
)

// MeasureAlongSegment measures a shop against the straight line between the
// trip endpoints. Used whenever the routing provider is unavailable.
//
// The projection parameter is computed in raw degree space, which is accurate
// enough at city scale; distances use great-circle math. The estimated time
// is a coarse ~3 min/km heuristic, not a routed ETA.
//
// Pure and read-only: safe to evaluate concurrently across shops.
func MeasureAlongSegment(shop domain.ShopRecord, origin, destination domain.Coordinate) domain.CandidateVendor {
	t := projectionParameter(shop.Coordinate, origin, destination)
	foot := footPoint(origin, destination, t)

	distanceFromRoute := shop.Coordinate.DistanceKm(foot)
	distanceFromStart := origin.DistanceKm(shop.Coordinate)

	return domain.CandidateVendor{
		ShopRecord:           shop,
		DistanceFromRouteKm:  distanceFromRoute,
		DetourKm:             distanceFromRoute,
		RoutePosition:        t,
		EstimatedTimeMinutes: int(math.Round(distanceFromStart * 3)),
		IsOnRoute:            distanceFromRoute <= onRouteSegmentKm,
	}
}

// CandidatesAlongSegment returns the shops within the detour corridor of the
// straight origin->destination segment, sorted by route position so stops
// read start to end.
func CandidatesAlongSegment(
	shops []domain.ShopRecord,
	origin, destination domain.Coordinate,
	maxDetourKm float64,
) []domain.CandidateVendor {
	candidates := make([]domain.CandidateVendor, 0, len(shops))
	for _, shop := range shops {
		v := MeasureAlongSegment(shop, origin, destination)
		if !withinCorridor(v, maxDetourKm) {
			continue
		}
		candidates = append(candidates, v)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].RoutePosition != candidates[j].RoutePosition {
			return candidates[i].RoutePosition < candidates[j].RoutePosition
		}
		// Tie-breaker keeps ordering deterministic for co-located shops.
		return candidates[i].ID < candidates[j].ID
	})

	return candidates
}

// MeasureAlongPath measures a shop against a routed overview path. ok is
// false when the path is too short to measure against.
func MeasureAlongPath(shop domain.ShopRecord, path []domain.Coordinate) (domain.CandidateVendor, bool) {
	if len(path) < 2 {
		return domain.CandidateVendor{}, false
	}

	minDistance := math.Inf(1)
	closestIndex := 0
	for i, p := range path {
		d := shop.Coordinate.DistanceKm(p)
		if d < minDistance {
			minDistance = d
			closestIndex = i
		}
	}

	return domain.CandidateVendor{
		ShopRecord:          shop,
		DistanceFromRouteKm: minDistance,
		// Leave the route at the nearest point and come back.
		DetourKm:             minDistance * 2,
		RoutePosition:        float64(closestIndex) / float64(len(path)-1),
		EstimatedTimeMinutes: int(math.Round(minDistance * 2)),
		IsOnRoute:            minDistance <= onRoutePathKm,
	}, true
}

// CandidatesAlongPath returns the shops within maxDetourKm of the routed
// path, nearest first.
func CandidatesAlongPath(
	shops []domain.ShopRecord,
	path []domain.Coordinate,
	maxDetourKm float64,
) []domain.CandidateVendor {
	candidates := make([]domain.CandidateVendor, 0, len(shops))
	for _, shop := range shops {
		v, ok := MeasureAlongPath(shop, path)
		if !ok || v.DistanceFromRouteKm > maxDetourKm {
			continue
		}
		candidates = append(candidates, v)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DistanceFromRouteKm != candidates[j].DistanceFromRouteKm {
			return candidates[i].DistanceFromRouteKm < candidates[j].DistanceFromRouteKm
		}
		return candidates[i].ID < candidates[j].ID
	})

	return candidates
}

func withinCorridor(v domain.CandidateVendor, maxDetourKm float64) bool {
	return v.DistanceFromRouteKm <= maxDetourKm &&
		v.RoutePosition >= -routePositionMargin &&
		v.RoutePosition <= 1+routePositionMargin
}

// projectionParameter returns the unclamped parameter t of the point's
// perpendicular projection onto the segment [a, b]: 0 at a, 1 at b.
func projectionParameter(point, a, b domain.Coordinate) float64 {
	ax := point.Lng - a.Lng
	ay := point.Lat - a.Lat
	bx := b.Lng - a.Lng
	by := b.Lat - a.Lat

	lenSq := bx*bx + by*by
	if lenSq == 0 {
		// Origin and destination coincide.
		return 0
	}
	return (ax*bx + ay*by) / lenSq
}

// footPoint returns the point on the segment [a, b] closest to the
// projection at parameter t, clamping t to [0, 1].
func footPoint(a, b domain.Coordinate, t float64) domain.Coordinate {
	switch {
	case t < 0:
		return a
	case t > 1:
		return b
	default:
		return domain.Coordinate{
			Lat: a.Lat + t*(b.Lat-a.Lat),
			Lng: a.Lng + t*(b.Lng-a.Lng),
		}
	}
}
