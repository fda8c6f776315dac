package routing

import (
	"context"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

// MockRouteProvider returns a fixed result or error, for tests.
type MockRouteProvider struct {
	Result *ports.RouteResult
	Err    error
	Calls  int
}

func (m *MockRouteProvider) ComputeRoute(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
	waypoints []domain.Coordinate,
	mode ports.TravelMode,
) (*ports.RouteResult, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
