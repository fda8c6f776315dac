package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

// ORS "route could not be found" error codes: 2009 covers unroutable pairs,
// 2010 a point with no routable road nearby.
var orsNoRouteCodes = map[int]struct{}{2009: {}, 2010: {}}

// ORSRouteProvider implements RouteProvider against the OpenRouteService
// directions API. It retries transient failures with backoff; the hard
// per-request deadline is owned by the caller's context.
//
// Safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewORSRouteProvider(apiKey string) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
	}, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

type orsErrorBody struct {
	Error struct {
		Code int `json:"code"`
	} `json:"error"`
}

// ComputeRoute requests a route visiting origin, the waypoints in order, and
// destination. ORS keeps the supplied visiting order, so WaypointOrder is the
// identity mapping.
func (o *ORSRouteProvider) ComputeRoute(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
	waypoints []domain.Coordinate,
	mode ports.TravelMode,
) (*ports.RouteResult, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, profileFor(mode))

	coords := make([][]float64, 0, 2+len(waypoints))
	coords = append(coords, origin.CoordsToList())
	for _, w := range waypoints {
		coords = append(coords, w.CoordsToList())
	}
	coords = append(coords, destination.CoordsToList())

	payload, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("%w: decode directions response: %v", ports.ErrProviderUnavailable, err)
	}

	if len(dr.Features) == 0 {
		return nil, ports.ErrNoRouteFound
	}
	feature := dr.Features[0]

	path := make([]domain.Coordinate, 0, len(feature.Geometry.Coordinates))
	for _, c := range feature.Geometry.Coordinates {
		if len(c) != 2 {
			return nil, fmt.Errorf("%w: invalid coordinate in directions geometry", ports.ErrProviderUnavailable)
		}
		path = append(path, domain.Coordinate{Lat: c[1], Lng: c[0]})
	}

	legs := make([]ports.RouteLeg, 0, len(feature.Properties.Segments))
	for _, seg := range feature.Properties.Segments {
		legs = append(legs, ports.RouteLeg{
			DistanceMeters:  int(seg.Distance + 0.5),
			DurationSeconds: int(seg.Duration + 0.5),
		})
	}

	order := make([]int, len(waypoints))
	for i := range order {
		order[i] = i
	}

	return &ports.RouteResult{
		Legs:          legs,
		OverviewPath:  path,
		WaypointOrder: order,
	}, nil
}

// classifyError maps transport failures onto the provider error vocabulary
// so callers branch on sentinels instead of HTTP details.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ports.ErrRouteTimeout, err)
	}

	var he *httpStatusError
	if errors.As(err, &he) {
		var body orsErrorBody
		if jsonErr := json.Unmarshal([]byte(he.Body), &body); jsonErr == nil {
			if _, ok := orsNoRouteCodes[body.Error.Code]; ok {
				return fmt.Errorf("%w: %v", ports.ErrNoRouteFound, err)
			}
		}
		if he.Code == http.StatusNotFound {
			return fmt.Errorf("%w: %v", ports.ErrNoRouteFound, err)
		}
	}

	return fmt.Errorf("%w: %v", ports.ErrProviderUnavailable, err)
}

func profileFor(mode ports.TravelMode) string {
	switch mode {
	case ports.ModeWalking:
		return "foot-walking"
	default:
		return "driving-car"
	}
}
