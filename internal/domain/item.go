package domain

// CatalogItem is an orderable item as stored in the item catalog.
type CatalogItem struct {
	ID       string
	Name     string
	Category string
	Price    float64
}
