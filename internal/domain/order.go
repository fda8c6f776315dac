package domain

import (
	"fmt"
	"time"
)

// PortionStatus tracks one vendor's progress on their share of an order.
type PortionStatus string

const (
	PortionNew            PortionStatus = "New"
	PortionPreparing      PortionStatus = "Preparing"
	PortionReadyForPickup PortionStatus = "Ready for Pickup"
	PortionPickedUp       PortionStatus = "Picked Up"
	PortionCancelled      PortionStatus = "Cancelled"
)

// CanTransitionTo reports whether the status machine allows moving to next.
// Forward path: New -> Preparing -> Ready for Pickup -> Picked Up.
// Cancellation is allowed from New and Preparing only.
func (s PortionStatus) CanTransitionTo(next PortionStatus) bool {
	switch s {
	case PortionNew:
		return next == PortionPreparing || next == PortionCancelled
	case PortionPreparing:
		return next == PortionReadyForPickup || next == PortionCancelled
	case PortionReadyForPickup:
		return next == PortionPickedUp
	default:
		return false
	}
}

// Terminal reports whether no further transitions are possible.
func (s PortionStatus) Terminal() bool {
	return s == PortionPickedUp || s == PortionCancelled
}

// OrderStatus is the customer-facing roll-up of all portion statuses.
type OrderStatus string

const (
	OrderNew                 OrderStatus = "New"
	OrderInProgress          OrderStatus = "In Progress"
	OrderReadyForPickup      OrderStatus = "Ready for Pickup"
	OrderCompleted           OrderStatus = "Completed"
	OrderCancelled           OrderStatus = "Cancelled"
	OrderCancelledNoResponse OrderStatus = "Cancelled - No Response"
)

// OrderItem is a single item line inside a vendor portion.
type OrderItem struct {
	ItemID       string
	Name         string
	Quantity     int
	PricePerItem float64
	TotalPrice   float64
}

// VendorPortion is one vendor's slice of a placed order. Portions carry their
// own status, advanced by the vendor-response workflow outside this service.
type VendorPortion struct {
	VendorID      string
	VendorName    string
	VendorAddress string
	VendorType    StoreType
	Status        PortionStatus
	Items         []OrderItem
	Subtotal      float64
}

// FinalOrder is the persisted outcome of a successful aggregation. It is
// created exactly once; afterwards only portion statuses (and the derived
// order status) change.
type FinalOrder struct {
	OrderID         string
	TripStart       string
	TripDestination string
	CreatedAt       time.Time
	// Vendors must respond before this deadline or the order is cancelled
	// for lack of response.
	QuoteDeadline time.Time
	Status        OrderStatus
	GrandTotal    float64
	PlatformFee   float64
	GatewayFee    float64
	Portions      []VendorPortion
	// Denormalized for vendor-side order queries.
	VendorIDs []string
}

// TransitionPortion advances one vendor's portion and refreshes the order
// status roll-up. Illegal transitions are rejected without mutating anything.
func (o *FinalOrder) TransitionPortion(vendorID string, next PortionStatus) error {
	for i := range o.Portions {
		p := &o.Portions[i]
		if p.VendorID != vendorID {
			continue
		}
		if !p.Status.CanTransitionTo(next) {
			return fmt.Errorf("transition portion: vendor %s: %s -> %s not allowed", vendorID, p.Status, next)
		}
		p.Status = next
		o.refreshStatus()
		return nil
	}
	return fmt.Errorf("transition portion: vendor %s has no portion in order %s", vendorID, o.OrderID)
}

// CancelNoResponse moves the order to its no-response terminal state. Only
// valid once the quote deadline has passed with every portion still New.
func (o *FinalOrder) CancelNoResponse(now time.Time) error {
	if now.Before(o.QuoteDeadline) {
		return fmt.Errorf("cancel no response: order %s deadline not reached", o.OrderID)
	}
	for _, p := range o.Portions {
		if p.Status != PortionNew {
			return fmt.Errorf("cancel no response: order %s has responded portions", o.OrderID)
		}
	}
	for i := range o.Portions {
		o.Portions[i].Status = PortionCancelled
	}
	o.Status = OrderCancelledNoResponse
	return nil
}

func (o *FinalOrder) refreshStatus() {
	if o.Status == OrderCancelledNoResponse {
		return
	}

	allPickedUp := len(o.Portions) > 0
	allReady := len(o.Portions) > 0
	allCancelled := len(o.Portions) > 0
	anyPreparing := false

	for _, p := range o.Portions {
		if p.Status != PortionPickedUp {
			allPickedUp = false
		}
		if p.Status != PortionReadyForPickup {
			allReady = false
		}
		if p.Status != PortionCancelled {
			allCancelled = false
		}
		if p.Status == PortionPreparing {
			anyPreparing = true
		}
	}

	switch {
	case allPickedUp:
		o.Status = OrderCompleted
	case allCancelled:
		o.Status = OrderCancelled
	case allReady:
		o.Status = OrderReadyForPickup
	case anyPreparing:
		o.Status = OrderInProgress
	}
}
