package dto

import "time"

// OrderRequest places an order: the planning input is re-run server-side and
// the resulting plan is aggregated and persisted in one step.
type OrderRequest struct {
	PlanRequest
}

type OrderItemResponse struct {
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	PricePerItem float64 `json:"price_per_item"`
	TotalPrice   float64 `json:"total_price"`
}

type PortionResponse struct {
	VendorID      string              `json:"vendor_id"`
	VendorName    string              `json:"vendor_name"`
	VendorAddress string              `json:"vendor_address"`
	VendorType    string              `json:"vendor_type"`
	Status        string              `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      float64             `json:"subtotal"`
}

type OrderResponse struct {
	OrderID         string                 `json:"order_id"`
	TripStart       string                 `json:"trip_start"`
	TripDestination string                 `json:"trip_destination"`
	CreatedAt       time.Time              `json:"created_at"`
	QuoteDeadline   time.Time              `json:"quote_deadline"`
	Status          string                 `json:"status"`
	GrandTotal      float64                `json:"grand_total"`
	PlatformFee     float64                `json:"platform_fee"`
	GatewayFee      float64                `json:"gateway_fee"`
	Portions        []PortionResponse      `json:"portions"`
	Dropped         []DroppedGroupResponse `json:"dropped,omitempty"`
}

// PortionUpdateRequest advances one vendor portion's status.
type PortionUpdateRequest struct {
	Status string `json:"status"`
}
