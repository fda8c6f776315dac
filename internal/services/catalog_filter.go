package services

import "route-shop-service/internal/domain"

// StoreCapabilities describes which ordering flow a store type supports.
// List-ordering stores take an open-ended item list and quote it themselves;
// every other type only serves a fixed menu.
type StoreCapabilities struct {
	SupportsListOrdering bool
}

// FilterShops keeps active shops whose type is in allowedTypes. An empty
// allow-list means every type is allowed.
func FilterShops(shops []domain.ShopRecord, allowedTypes []domain.StoreType) []domain.ShopRecord {
	allowed := make(map[domain.StoreType]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}

	out := make([]domain.ShopRecord, 0, len(shops))
	for _, shop := range shops {
		if !shop.Active {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[shop.Type]; !ok {
				continue
			}
		}
		out = append(out, shop)
	}
	return out
}

// CapabilitiesOf returns the ordering capabilities of a store type.
func CapabilitiesOf(t domain.StoreType) StoreCapabilities {
	switch t {
	case domain.StoreGrocery, domain.StoreSupermarket, domain.StoreMedical, domain.StorePharmacy:
		return StoreCapabilities{SupportsListOrdering: true}
	default:
		return StoreCapabilities{SupportsListOrdering: false}
	}
}
