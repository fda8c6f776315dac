package dto

// PointRequest is a trip endpoint: coordinates plus a display address.
type PointRequest struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address"`
}

type DiscoverRequest struct {
	Origin       *PointRequest `json:"origin"`
	Destination  *PointRequest `json:"destination"`
	MaxDetourKm  float64       `json:"max_detour_km"`
	AllowedTypes []string      `json:"allowed_types"`
	TravelMode   string        `json:"travel_mode"`
}

type CandidateResponse struct {
	ShopID               string   `json:"shop_id"`
	Name                 string   `json:"name"`
	StoreType            string   `json:"store_type"`
	Lat                  float64  `json:"lat"`
	Lng                  float64  `json:"lng"`
	Address              string   `json:"address"`
	Categories           []string `json:"categories"`
	DistanceFromRouteKm  float64  `json:"distance_from_route_km"`
	DetourKm             float64  `json:"detour_km"`
	RoutePosition        float64  `json:"route_position"`
	EstimatedTimeMinutes int      `json:"estimated_time_minutes"`
	IsOnRoute            bool     `json:"is_on_route"`
	SupportsListOrdering bool     `json:"supports_list_ordering"`
}

type DiscoverResponse struct {
	Candidates       []CandidateResponse `json:"candidates"`
	TotalDistanceKm  float64             `json:"total_distance_km"`
	TotalDurationMin float64             `json:"total_duration_min"`
	UsedFallback     bool                `json:"used_fallback"`
}
