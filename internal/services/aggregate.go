package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/platform/obs"
	"route-shop-service/internal/ports"
)

// ErrEmptyPlan rejects aggregation of a plan with no items anywhere.
var ErrEmptyPlan = errors.New("assignment plan holds no items")

// Vendors get this long to respond to a new order before it can be cancelled
// for lack of response.
const quoteResponseWindow = 5 * time.Minute

// FeeSchedule carries the flat fees added on top of vendor subtotals.
type FeeSchedule struct {
	PlatformFee float64
	GatewayFee  float64
}

// TripInfo captures where the order's trip runs, for display and pickup
// sequencing downstream.
type TripInfo struct {
	StartAddress       string
	DestinationAddress string
}

// OrderIDGenerator mints opaque order ids; injected for deterministic tests.
type OrderIDGenerator func() string

// DefaultOrderID produces ids like THRU-3F2A9C1D4.
func DefaultOrderID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "THRU-" + raw[:9]
}

// Aggregator rolls an assignment plan into a persisted FinalOrder.
type Aggregator struct {
	Orders     ports.OrderRepository
	NewOrderID OrderIDGenerator
	Now        func() time.Time
	Logger     *zap.Logger
}

// Aggregate turns a plan into a FinalOrder and persists it with a single
// idempotent write. The grand total is the sum of vendor subtotals plus both
// fees; every entry becomes a portion in status New.
//
// A plan with zero entries, or whose entries are all empty, fails with
// ErrEmptyPlan and nothing is written.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	plan *domain.AssignmentPlan,
	trip TripInfo,
	fees FeeSchedule,
) (_ *domain.FinalOrder, err error) {
	defer obs.Time(ctx, a.Logger, "aggregator.Aggregate")(&err)

	if plan == nil || !hasItems(plan) {
		return nil, ErrEmptyPlan
	}

	newID := a.NewOrderID
	if newID == nil {
		newID = DefaultOrderID
	}
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}

	entries := plan.Entries()
	portions := make([]domain.VendorPortion, 0, len(entries))
	vendorIDs := make([]string, 0, len(entries))

	for _, entry := range entries {
		items := make([]domain.OrderItem, 0, len(entry.Items))
		for _, line := range entry.Items {
			items = append(items, domain.OrderItem{
				ItemID:       line.ItemID,
				Name:         line.Name,
				Quantity:     line.Quantity,
				PricePerItem: line.Price,
				TotalPrice:   line.Price * float64(line.Quantity),
			})
		}
		portions = append(portions, domain.VendorPortion{
			VendorID:      entry.Vendor.ID,
			VendorName:    entry.Vendor.Name,
			VendorAddress: entry.Vendor.Address,
			VendorType:    entry.Vendor.Type,
			Status:        domain.PortionNew,
			Items:         items,
			Subtotal:      entry.Subtotal,
		})
		vendorIDs = append(vendorIDs, entry.Vendor.ID)
	}

	order := &domain.FinalOrder{
		OrderID:         newID(),
		TripStart:       trip.StartAddress,
		TripDestination: trip.DestinationAddress,
		CreatedAt:       now,
		QuoteDeadline:   now.Add(quoteResponseWindow),
		Status:          domain.OrderNew,
		GrandTotal:      plan.TotalSubtotal() + fees.PlatformFee + fees.GatewayFee,
		PlatformFee:     fees.PlatformFee,
		GatewayFee:      fees.GatewayFee,
		Portions:        portions,
		VendorIDs:       vendorIDs,
	}

	if err := a.Orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("aggregate: persist order %s: %w", order.OrderID, err)
	}

	a.Logger.Info("order created",
		zap.String("op", "aggregator.Aggregate"),
		zap.String("order_id", order.OrderID),
		zap.Int("vendors", len(portions)),
		zap.Float64("grand_total", order.GrandTotal),
	)

	return order, nil
}

func hasItems(plan *domain.AssignmentPlan) bool {
	for _, entry := range plan.Entries() {
		if len(entry.Items) > 0 {
			return true
		}
	}
	return false
}
