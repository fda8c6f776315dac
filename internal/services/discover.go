package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/platform/obs"
	"route-shop-service/internal/ports"
)

const defaultProviderTimeout = 5 * time.Second

// Discovery finds the shops a traveller can visit within their detour budget.
// It prefers the external routing provider and degrades to straight-line
// geometry when the provider is unavailable or too slow; both paths emit the
// same CandidateVendor shape, so downstream planning is agnostic to which ran.
type Discovery struct {
	Shops    ports.ShopRepository
	Provider ports.RouteProvider
	// Hard deadline for the provider call; defaults to 5s.
	Timeout time.Duration
	Logger  *zap.Logger
}

// DiscoveryResult is the outcome of one discovery run. It retains the trip
// endpoints and routed path so later measurements (e.g. of pinned vendors)
// use the same geometry that produced the candidates.
type DiscoveryResult struct {
	Candidates       []domain.CandidateVendor
	Origin           domain.Coordinate
	Destination      domain.Coordinate
	OverviewPath     []domain.Coordinate
	TotalDistanceKm  float64
	TotalDurationMin float64
	UsedFallback     bool
}

// Measure computes route-relative measurements for one shop using whichever
// geometry path this result was produced with, without applying the detour
// budget.
func (r *DiscoveryResult) Measure(shop domain.ShopRecord) domain.CandidateVendor {
	if !r.UsedFallback {
		if v, ok := MeasureAlongPath(shop, r.OverviewPath); ok {
			return v
		}
	}
	return MeasureAlongSegment(shop, r.Origin, r.Destination)
}

// DiscoverShops lists the active shops of the allowed types that lie within
// maxDetourKm of the origin->destination trip.
//
// Provider outages and timeouts are recovered locally via the fallback and
// never surfaced; ErrNoRouteFound is the one provider error the caller sees.
func (d *Discovery) DiscoverShops(
	ctx context.Context,
	origin domain.RoutePoint,
	destination domain.RoutePoint,
	maxDetourKm float64,
	allowedTypes []domain.StoreType,
	mode ports.TravelMode,
) (_ *DiscoveryResult, err error) {
	defer obs.Time(ctx, d.Logger, "discovery.DiscoverShops")(&err)

	shops, err := d.Shops.ListActiveShops(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover shops: list active shops: %w", err)
	}
	eligible := FilterShops(shops, allowedTypes)

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	routeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	route, routeErr := d.Provider.ComputeRoute(routeCtx, origin.Coordinate, destination.Coordinate, nil, mode)
	if routeErr != nil {
		if errors.Is(routeErr, ports.ErrNoRouteFound) {
			return nil, fmt.Errorf("discover shops: %w", routeErr)
		}
		d.Logger.Warn("route provider failed, using straight-line fallback",
			zap.String("op", "discovery.DiscoverShops"),
			zap.Error(routeErr),
		)
		return d.fallback(origin, destination, eligible, maxDetourKm), nil
	}

	if len(route.OverviewPath) < 2 {
		d.Logger.Warn("route provider returned an unusable path, using straight-line fallback",
			zap.String("op", "discovery.DiscoverShops"),
		)
		return d.fallback(origin, destination, eligible, maxDetourKm), nil
	}

	return &DiscoveryResult{
		Candidates:       CandidatesAlongPath(eligible, route.OverviewPath, maxDetourKm),
		Origin:           origin.Coordinate,
		Destination:      destination.Coordinate,
		OverviewPath:     route.OverviewPath,
		TotalDistanceKm:  route.TotalDistanceKm(),
		TotalDurationMin: route.TotalDurationMinutes(),
		UsedFallback:     false,
	}, nil
}

func (d *Discovery) fallback(
	origin, destination domain.RoutePoint,
	shops []domain.ShopRecord,
	maxDetourKm float64,
) *DiscoveryResult {
	return &DiscoveryResult{
		Candidates:      CandidatesAlongSegment(shops, origin.Coordinate, destination.Coordinate, maxDetourKm),
		Origin:          origin.Coordinate,
		Destination:     destination.Coordinate,
		TotalDistanceKm: origin.Coordinate.DistanceKm(destination.Coordinate),
		UsedFallback:    true,
	}
}
