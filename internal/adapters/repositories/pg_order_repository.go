package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

// Postgres-backed implementation of the OrderRepository port. Portions and
// vendor ids live in JSONB columns.
type PgOrderRepository struct{ DB *sql.DB }

func NewPgOrderRepository(db *sql.DB) *PgOrderRepository {
	return &PgOrderRepository{DB: db}
}

func (r *PgOrderRepository) CreateOrder(ctx context.Context, order *domain.FinalOrder) error {
	if r.DB == nil {
		return errors.New("pg order repository: DB is nil")
	}
	if order == nil || order.OrderID == "" {
		return errors.New("create order: order id must be non-empty")
	}

	portions, vendorIDs, err := marshalOrderDocs(order)
	if err != nil {
		return fmt.Errorf("create order %q: %w", order.OrderID, err)
	}

	_, err = r.DB.ExecContext(ctx, `
	INSERT INTO orders (
		order_id, created_at, quote_deadline, status,
		grand_total, platform_fee, gateway_fee,
		trip_start, trip_destination, vendor_ids, portions
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		order.OrderID,
		order.CreatedAt.UTC(), order.QuoteDeadline.UTC(),
		string(order.Status),
		order.GrandTotal, order.PlatformFee, order.GatewayFee,
		order.TripStart, order.TripDestination,
		vendorIDs, portions,
	)
	if err != nil {
		return fmt.Errorf("create order %q: insert: %w", order.OrderID, err)
	}

	return nil
}

func (r *PgOrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.FinalOrder, error) {
	if r.DB == nil {
		return nil, errors.New("pg order repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, `
	SELECT order_id, created_at, quote_deadline, status,
		grand_total, platform_fee, gateway_fee,
		trip_start, trip_destination, vendor_ids, portions
	FROM orders
	WHERE order_id = $1;
	`, orderID)

	var (
		order               domain.FinalOrder
		status              string
		vendorIDs, portions []byte
	)
	err := row.Scan(
		&order.OrderID, &order.CreatedAt, &order.QuoteDeadline, &status,
		&order.GrandTotal, &order.PlatformFee, &order.GatewayFee,
		&order.TripStart, &order.TripDestination, &vendorIDs, &portions,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order %q: %w", orderID, ports.ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %q: scan: %w", orderID, err)
	}

	order.Status = domain.OrderStatus(status)
	if err := json.Unmarshal(vendorIDs, &order.VendorIDs); err != nil {
		return nil, fmt.Errorf("get order %q: parse vendor ids: %w", orderID, err)
	}
	if err := json.Unmarshal(portions, &order.Portions); err != nil {
		return nil, fmt.Errorf("get order %q: parse portions: %w", orderID, err)
	}

	return &order, nil
}

func (r *PgOrderRepository) UpdateOrder(ctx context.Context, order *domain.FinalOrder) error {
	if r.DB == nil {
		return errors.New("pg order repository: DB is nil")
	}

	portions, _, err := marshalOrderDocs(order)
	if err != nil {
		return fmt.Errorf("update order %q: %w", order.OrderID, err)
	}

	res, err := r.DB.ExecContext(ctx, `
	UPDATE orders SET status = $1, portions = $2 WHERE order_id = $3;
	`, string(order.Status), portions, order.OrderID)
	if err != nil {
		return fmt.Errorf("update order %q: %w", order.OrderID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order %q: rows affected: %w", order.OrderID, err)
	}
	if n == 0 {
		return fmt.Errorf("update order %q: %w", order.OrderID, ports.ErrOrderNotFound)
	}

	return nil
}
