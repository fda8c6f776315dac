package ports

import (
	"context"
	"errors"

	"route-shop-service/internal/domain"
)

// ErrOrderNotFound is returned for lookups of unknown order ids.
var ErrOrderNotFound = errors.New("order not found")

// Port: boundary for persisting FinalOrders in the document store.
type OrderRepository interface {
	// Persist a new order. The write is a single idempotent insert keyed by
	// order id: a failure must not leave a partial or duplicate document.
	CreateOrder(ctx context.Context, order *domain.FinalOrder) error
	GetOrder(ctx context.Context, orderID string) (*domain.FinalOrder, error)
	// Persist portion-status changes applied by the vendor workflow.
	UpdateOrder(ctx context.Context, order *domain.FinalOrder) error
}
