package domain

// StoreType is the closed set of shop categories known to the platform.
type StoreType string

const (
	StoreGrocery      StoreType = "grocery"
	StoreSupermarket  StoreType = "supermarket"
	StoreMedical      StoreType = "medical"
	StorePharmacy     StoreType = "pharmacy"
	StoreRestaurant   StoreType = "restaurant"
	StoreCafe         StoreType = "cafe"
	StoreCloudKitchen StoreType = "cloud_kitchen"
	StoreBakery       StoreType = "bakery"
	StoreFastFood     StoreType = "fast_food"
	StoreFineDining   StoreType = "fine_dining"
	StoreFoodTruck    StoreType = "food_truck"
	StoreCoffeeShop   StoreType = "coffee_shop"
	StoreBar          StoreType = "bar"
	StorePub          StoreType = "pub"
)

// AllStoreTypes lists every known store type, in a fixed order.
func AllStoreTypes() []StoreType {
	return []StoreType{
		StoreGrocery, StoreSupermarket, StoreMedical, StorePharmacy,
		StoreRestaurant, StoreCafe, StoreCloudKitchen, StoreBakery,
		StoreFastFood, StoreFineDining, StoreFoodTruck, StoreCoffeeShop,
		StoreBar, StorePub,
	}
}

// KnownStoreType reports whether t belongs to the closed StoreType set.
func KnownStoreType(t StoreType) bool {
	for _, known := range AllStoreTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ShopRecord is a vendor as registered with the vendor-management system.
// Records are owned and mutated elsewhere; planning only reads them.
type ShopRecord struct {
	ID         string
	Name       string
	Type       StoreType
	Coordinate Coordinate
	Address    string
	Active     bool
	Categories []string
}

// ServesCategory reports whether the shop declares the given item category.
func (s ShopRecord) ServesCategory(category string) bool {
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CandidateVendor is a shop annotated with route-relative measurements.
// Candidates are computed fresh for every planning request and never persisted.
type CandidateVendor struct {
	ShopRecord

	// Great-circle distance from the shop to the nearest point of the route.
	DistanceFromRouteKm float64
	// Extra distance to visit the shop and rejoin the route.
	DetourKm float64
	// Projection parameter along the trip: 0 at the origin, 1 at the
	// destination. Deliberately not clamped, so shops slightly before the
	// origin or past the destination carry negative or >1 positions.
	RoutePosition float64
	// Coarse heuristic, not a routed ETA.
	EstimatedTimeMinutes int
	IsOnRoute            bool
	// Set only for fabricated placeholder vendors created by the planner.
	Synthetic bool
}
