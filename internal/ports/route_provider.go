package ports

import (
	"context"
	"errors"

	"route-shop-service/internal/domain"
)

// Provider failure vocabulary. Callers recover from unavailability and
// timeouts by switching to the in-memory geometry fallback; only
// ErrNoRouteFound is ever surfaced to the user.
var (
	ErrProviderUnavailable = errors.New("route provider unavailable")
	ErrNoRouteFound        = errors.New("no route found")
	ErrRouteTimeout        = errors.New("route request timed out")
)

// TravelMode selects the routing profile. Driving is the only mode every
// provider is required to support.
type TravelMode string

const (
	ModeDriving TravelMode = "driving"
	ModeWalking TravelMode = "walking"
)

// RouteLeg is the stretch between two consecutive stops of a computed route.
type RouteLeg struct {
	DistanceMeters  int
	DurationSeconds int
}

// RouteResult is an ordered route from origin to destination through the
// supplied waypoints.
//
// WaypointOrder maps visit position to the index of the originally supplied
// waypoint: providers may reorder waypoints for a shorter total path, so
// "stop N" must be resolved through this mapping, never positionally.
type RouteResult struct {
	Legs          []RouteLeg
	OverviewPath  []domain.Coordinate
	WaypointOrder []int
}

// TotalDistanceKm sums all legs in kilometers.
func (r *RouteResult) TotalDistanceKm() float64 {
	meters := 0
	for _, leg := range r.Legs {
		meters += leg.DistanceMeters
	}
	return float64(meters) / 1000
}

// TotalDurationMinutes sums all legs in minutes.
func (r *RouteResult) TotalDurationMinutes() float64 {
	seconds := 0
	for _, leg := range r.Legs {
		seconds += leg.DurationSeconds
	}
	return float64(seconds) / 60
}

// RouteProvider is the boundary to the external routing service. One
// outstanding call per planning request; implementations must respect
// context cancellation so callers can impose a hard deadline.
type RouteProvider interface {
	ComputeRoute(
		ctx context.Context,
		origin domain.Coordinate,
		destination domain.Coordinate,
		waypoints []domain.Coordinate,
		mode TravelMode,
	) (*RouteResult, error)
}
