package repositories

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func insertShop(t *testing.T, db *sql.DB, id, name, storeType string, active bool, categories ...string) {
	t.Helper()
	a := 0
	if active {
		a = 1
	}
	_, err := db.Exec(`
	INSERT INTO shops (shop_id, name, store_type, lat, lng, address, active)
	VALUES (?, ?, ?, 12.9, 77.6, 'Bengaluru', ?)
	`, id, name, storeType, a)
	require.NoError(t, err)

	for _, c := range categories {
		_, err := db.Exec(`INSERT INTO shop_categories (shop_id, category) VALUES (?, ?)`, id, c)
		require.NoError(t, err)
	}
}

func TestSqliteShopRepositoryListActiveShops(t *testing.T) {
	db := testDB(t)
	insertShop(t, db, "shop-a", "A Mart", "grocery", true, "grocery", "dairy")
	insertShop(t, db, "shop-b", "B Meds", "pharmacy", true, "medicine")
	insertShop(t, db, "shop-c", "C Closed", "grocery", false, "grocery")

	repo := NewSqliteShopRepository(db)

	got, err := repo.ListActiveShops(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.Equal(t, "shop-a", got[0].ID)
	require.Equal(t, []string{"dairy", "grocery"}, sorted(got[0].Categories))
	require.Equal(t, domain.StoreGrocery, got[0].Type)
	require.Equal(t, "shop-b", got[1].ID)
}

func TestSqliteShopRepositoryGetShopsByIDs(t *testing.T) {
	db := testDB(t)
	insertShop(t, db, "shop-a", "A Mart", "grocery", true, "grocery")
	insertShop(t, db, "shop-b", "B Meds", "pharmacy", false)

	repo := NewSqliteShopRepository(db)

	got, err := repo.GetShopsByIDs(context.Background(), []string{"shop-a", "shop-b", "shop-missing", "shop-a", ""})
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.True(t, got["shop-a"].Active)
	// Inactive shops still resolve by id; callers decide what to do with them.
	require.False(t, got["shop-b"].Active)
	_, found := got["shop-missing"]
	require.False(t, found)

	empty, err := repo.GetShopsByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSqliteShopRepositoryListShopsByCategories(t *testing.T) {
	db := testDB(t)
	insertShop(t, db, "shop-a", "A Mart", "grocery", true, "grocery", "dairy")
	insertShop(t, db, "shop-b", "B Meds", "pharmacy", true, "medicine")
	insertShop(t, db, "shop-c", "C Closed", "grocery", false, "grocery")

	repo := NewSqliteShopRepository(db)

	got, err := repo.ListShopsByCategories(context.Background(), []string{"grocery"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "shop-a", got[0].ID)
}

func TestSqliteItemRepositoryGetItemsByIDs(t *testing.T) {
	db := testDB(t)
	_, err := db.Exec(`INSERT INTO items (item_id, name, category, price) VALUES
		('item-onion', 'Onion 1kg', 'grocery', 42.0),
		('item-milk', 'Milk 1L', 'dairy', 50.0)`)
	require.NoError(t, err)

	repo := NewSqliteItemRepository(db)

	got, err := repo.GetItemsByIDs(context.Background(), []string{"item-onion", "item-missing"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	require.Equal(t, "Onion 1kg", got["item-onion"].Name)
	require.InDelta(t, 42.0, got["item-onion"].Price, 1e-9)
}

func sampleOrder() *domain.FinalOrder {
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &domain.FinalOrder{
		OrderID:         "THRU-TEST00001",
		TripStart:       "BTM Layout",
		TripDestination: "HSR Layout",
		CreatedAt:       created,
		QuoteDeadline:   created.Add(5 * time.Minute),
		Status:          domain.OrderNew,
		GrandTotal:      198,
		PlatformFee:     10,
		GatewayFee:      5,
		Portions: []domain.VendorPortion{{
			VendorID:   "grocer",
			VendorName: "Nandini Fresh Mart",
			VendorType: domain.StoreGrocery,
			Status:     domain.PortionNew,
			Items: []domain.OrderItem{{
				ItemID: "item-onion", Name: "Onion 1kg", Quantity: 3,
				PricePerItem: 42, TotalPrice: 126,
			}},
			Subtotal: 126,
		}},
		VendorIDs: []string{"grocer"},
	}
}

func TestSqliteOrderRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewSqliteOrderRepository(db)
	ctx := context.Background()

	order := sampleOrder()
	require.NoError(t, repo.CreateOrder(ctx, order))

	got, err := repo.GetOrder(ctx, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, order, got)
}

func TestSqliteOrderRepositoryCreateIsNotRepeatable(t *testing.T) {
	db := testDB(t)
	repo := NewSqliteOrderRepository(db)
	ctx := context.Background()

	order := sampleOrder()
	require.NoError(t, repo.CreateOrder(ctx, order))
	require.Error(t, repo.CreateOrder(ctx, order))
}

func TestSqliteOrderRepositoryGetMissing(t *testing.T) {
	db := testDB(t)
	repo := NewSqliteOrderRepository(db)

	_, err := repo.GetOrder(context.Background(), "THRU-NOPE")
	require.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestSqliteOrderRepositoryUpdate(t *testing.T) {
	db := testDB(t)
	repo := NewSqliteOrderRepository(db)
	ctx := context.Background()

	order := sampleOrder()
	require.NoError(t, repo.CreateOrder(ctx, order))

	require.NoError(t, order.TransitionPortion("grocer", domain.PortionPreparing))
	require.NoError(t, repo.UpdateOrder(ctx, order))

	got, err := repo.GetOrder(ctx, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderInProgress, got.Status)
	require.Equal(t, domain.PortionPreparing, got.Portions[0].Status)

	missing := sampleOrder()
	missing.OrderID = "THRU-NOPE"
	require.ErrorIs(t, repo.UpdateOrder(ctx, missing), ports.ErrOrderNotFound)
}

func TestSeedFromJSON(t *testing.T) {
	db := testDB(t)

	require.NoError(t, SeedFromJSON(db, "../../../data/seeds/shops.json", "../../../data/seeds/items.json"))
	// Reseeding replaces rows instead of failing.
	require.NoError(t, SeedFromJSON(db, "../../../data/seeds/shops.json", "../../../data/seeds/items.json"))

	repo := NewSqliteShopRepository(db)
	shops, err := repo.ListActiveShops(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, shops)
	for _, s := range shops {
		require.True(t, s.Active)
		require.True(t, domain.KnownStoreType(s.Type))
	}
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
