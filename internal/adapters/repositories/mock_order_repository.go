package repositories

import (
	"context"
	"fmt"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

// MockOrderRepository is an in-memory OrderRepository for tests.
type MockOrderRepository struct {
	Orders map[string]*domain.FinalOrder
	// Forced errors, returned verbatim when set.
	CreateErr error
	UpdateErr error

	CreateCalls int
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{Orders: make(map[string]*domain.FinalOrder)}
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.FinalOrder) error {
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, exists := m.Orders[order.OrderID]; exists {
		return fmt.Errorf("order %q already exists", order.OrderID)
	}
	cp := *order
	m.Orders[order.OrderID] = &cp
	return nil
}

func (m *MockOrderRepository) GetOrder(_ context.Context, orderID string) (*domain.FinalOrder, error) {
	order, ok := m.Orders[orderID]
	if !ok {
		return nil, fmt.Errorf("get order %q: %w", orderID, ports.ErrOrderNotFound)
	}
	cp := *order
	return &cp, nil
}

func (m *MockOrderRepository) UpdateOrder(_ context.Context, order *domain.FinalOrder) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.Orders[order.OrderID]; !ok {
		return fmt.Errorf("update order %q: %w", order.OrderID, ports.ErrOrderNotFound)
	}
	cp := *order
	m.Orders[order.OrderID] = &cp
	return nil
}
