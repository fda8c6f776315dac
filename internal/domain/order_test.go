package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testOrder(portions ...VendorPortion) *FinalOrder {
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	ids := make([]string, 0, len(portions))
	for _, p := range portions {
		ids = append(ids, p.VendorID)
	}
	return &FinalOrder{
		OrderID:       "THRU-TEST00001",
		CreatedAt:     created,
		QuoteDeadline: created.Add(5 * time.Minute),
		Status:        OrderNew,
		Portions:      portions,
		VendorIDs:     ids,
	}
}

func portion(vendorID string, status PortionStatus) VendorPortion {
	return VendorPortion{VendorID: vendorID, Status: status}
}

func TestPortionStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PortionStatus
		to      PortionStatus
		allowed bool
	}{
		{PortionNew, PortionPreparing, true},
		{PortionNew, PortionCancelled, true},
		{PortionNew, PortionReadyForPickup, false},
		{PortionNew, PortionPickedUp, false},
		{PortionPreparing, PortionReadyForPickup, true},
		{PortionPreparing, PortionCancelled, true},
		{PortionPreparing, PortionPickedUp, false},
		{PortionReadyForPickup, PortionPickedUp, true},
		{PortionReadyForPickup, PortionCancelled, false},
		{PortionPickedUp, PortionCancelled, false},
		{PortionCancelled, PortionPreparing, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		require.Equalf(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionPortionRejectsIllegalMove(t *testing.T) {
	o := testOrder(portion("v1", PortionNew))

	err := o.TransitionPortion("v1", PortionPickedUp)
	require.Error(t, err)
	require.Equal(t, PortionNew, o.Portions[0].Status)
	require.Equal(t, OrderNew, o.Status)
}

func TestTransitionPortionUnknownVendor(t *testing.T) {
	o := testOrder(portion("v1", PortionNew))

	err := o.TransitionPortion("v2", PortionPreparing)
	require.Error(t, err)
}

func TestOrderStatusRollUp(t *testing.T) {
	o := testOrder(portion("v1", PortionNew), portion("v2", PortionNew))

	// One vendor starts preparing: the order is in progress.
	require.NoError(t, o.TransitionPortion("v1", PortionPreparing))
	require.Equal(t, OrderInProgress, o.Status)

	// Everything ready: ready for pickup.
	require.NoError(t, o.TransitionPortion("v1", PortionReadyForPickup))
	require.NoError(t, o.TransitionPortion("v2", PortionPreparing))
	require.Equal(t, OrderInProgress, o.Status)
	require.NoError(t, o.TransitionPortion("v2", PortionReadyForPickup))
	require.Equal(t, OrderReadyForPickup, o.Status)

	// Everything picked up: completed.
	require.NoError(t, o.TransitionPortion("v1", PortionPickedUp))
	require.NoError(t, o.TransitionPortion("v2", PortionPickedUp))
	require.Equal(t, OrderCompleted, o.Status)
}

func TestOrderStatusRollUpAllCancelled(t *testing.T) {
	o := testOrder(portion("v1", PortionNew), portion("v2", PortionPreparing))

	require.NoError(t, o.TransitionPortion("v1", PortionCancelled))
	require.Equal(t, OrderInProgress, o.Status)
	require.NoError(t, o.TransitionPortion("v2", PortionCancelled))
	require.Equal(t, OrderCancelled, o.Status)
}

func TestCancelNoResponse(t *testing.T) {
	o := testOrder(portion("v1", PortionNew), portion("v2", PortionNew))

	// Before the deadline the order cannot time out.
	err := o.CancelNoResponse(o.QuoteDeadline.Add(-time.Second))
	require.Error(t, err)
	require.Equal(t, OrderNew, o.Status)

	require.NoError(t, o.CancelNoResponse(o.QuoteDeadline))
	require.Equal(t, OrderCancelledNoResponse, o.Status)
	for _, p := range o.Portions {
		require.Equal(t, PortionCancelled, p.Status)
	}
}

func TestCancelNoResponseAfterVendorReacted(t *testing.T) {
	o := testOrder(portion("v1", PortionNew), portion("v2", PortionNew))
	require.NoError(t, o.TransitionPortion("v2", PortionPreparing))

	err := o.CancelNoResponse(o.QuoteDeadline.Add(time.Minute))
	require.Error(t, err)
	require.NotEqual(t, OrderCancelledNoResponse, o.Status)
}

func TestPortionStatusTerminal(t *testing.T) {
	require.True(t, PortionPickedUp.Terminal())
	require.True(t, PortionCancelled.Terminal())
	require.False(t, PortionNew.Terminal())
	require.False(t, PortionPreparing.Terminal())
	require.False(t, PortionReadyForPickup.Terminal())
}
