package dto

type ItemQuantityRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// PinnedGroupRequest carries items the user picked from one specific
// vendor's inventory.
type PinnedGroupRequest struct {
	VendorID string                `json:"vendor_id"`
	Items    []ItemQuantityRequest `json:"items"`
}

type PlanRequest struct {
	Origin       *PointRequest         `json:"origin"`
	Destination  *PointRequest         `json:"destination"`
	MaxDetourKm  float64               `json:"max_detour_km"`
	AllowedTypes []string              `json:"allowed_types"`
	TravelMode   string                `json:"travel_mode"`
	Pinned       []PinnedGroupRequest  `json:"pinned"`
	Items        []ItemQuantityRequest `json:"items"`
}

type PlanItemResponse struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type PlanEntryResponse struct {
	VendorID      string             `json:"vendor_id"`
	VendorName    string             `json:"vendor_name"`
	VendorAddress string             `json:"vendor_address"`
	StoreType     string             `json:"store_type"`
	DetourKm      float64            `json:"detour_km"`
	Synthetic     bool               `json:"synthetic"`
	Items         []PlanItemResponse `json:"items"`
	Subtotal      float64            `json:"subtotal"`
}

type DroppedGroupResponse struct {
	VendorID string                `json:"vendor_id"`
	Reason   string                `json:"reason"`
	Items    []ItemQuantityRequest `json:"items"`
}

type PlanResponse struct {
	Entries      []PlanEntryResponse    `json:"entries"`
	Dropped      []DroppedGroupResponse `json:"dropped"`
	Subtotal     float64                `json:"subtotal"`
	UsedFallback bool                   `json:"used_fallback"`
}
