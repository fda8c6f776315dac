package repositories

import (
	"context"

	"route-shop-service/internal/domain"
)

// MockShopRepository serves a fixed shop list for tests.
type MockShopRepository struct {
	Shops []domain.ShopRecord
	Err   error

	ListCalls int
}

func (m *MockShopRepository) ListActiveShops(_ context.Context) ([]domain.ShopRecord, error) {
	m.ListCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.ShopRecord, 0, len(m.Shops))
	for _, s := range m.Shops {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockShopRepository) GetShopsByIDs(_ context.Context, ids []string) (map[string]domain.ShopRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]domain.ShopRecord)
	for _, id := range ids {
		for _, s := range m.Shops {
			if s.ID == id {
				out[id] = s
			}
		}
	}
	return out, nil
}

func (m *MockShopRepository) ListShopsByCategories(_ context.Context, categories []string) ([]domain.ShopRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.ShopRecord, 0)
	for _, s := range m.Shops {
		if !s.Active {
			continue
		}
		for _, c := range categories {
			if s.ServesCategory(c) {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

// MockItemRepository serves a fixed item catalog for tests.
type MockItemRepository struct {
	Items map[string]domain.CatalogItem
	Err   error
}

func (m *MockItemRepository) GetItemsByIDs(_ context.Context, ids []string) (map[string]domain.CatalogItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]domain.CatalogItem)
	for _, id := range ids {
		if item, ok := m.Items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}
