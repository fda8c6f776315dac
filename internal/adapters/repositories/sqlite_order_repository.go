package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"route-shop-service/internal/domain"
	"route-shop-service/internal/ports"
)

// SQLite-backed implementation of the OrderRepository port. Orders are kept
// document-style: scalar columns for query fields, vendor portions as JSON.
type SqliteOrderRepository struct{ DB *sql.DB }

func NewSqliteOrderRepository(db *sql.DB) *SqliteOrderRepository {
	return &SqliteOrderRepository{DB: db}
}

// Persist a new order. Plain INSERT against the primary key: a retried call
// with the same order id fails instead of duplicating the document.
func (r *SqliteOrderRepository) CreateOrder(ctx context.Context, order *domain.FinalOrder) error {
	if r.DB == nil {
		return errors.New("sqlite order repository: DB is nil")
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
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		order.OrderID,
		order.CreatedAt.UTC().Format(time.RFC3339Nano),
		order.QuoteDeadline.UTC().Format(time.RFC3339Nano),
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

func (r *SqliteOrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.FinalOrder, error) {
	if r.DB == nil {
		return nil, errors.New("sqlite order repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, `
	SELECT order_id, created_at, quote_deadline, status,
		grand_total, platform_fee, gateway_fee,
		trip_start, trip_destination, vendor_ids, portions
	FROM orders
	WHERE order_id = ?;
	`, orderID)

	var (
		order                    domain.FinalOrder
		createdAt, quoteDeadline string
		status                   string
		vendorIDs, portions      []byte
	)
	err := row.Scan(
		&order.OrderID, &createdAt, &quoteDeadline, &status,
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
	if order.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("get order %q: parse created_at: %w", orderID, err)
	}
	if order.QuoteDeadline, err = time.Parse(time.RFC3339Nano, quoteDeadline); err != nil {
		return nil, fmt.Errorf("get order %q: parse quote_deadline: %w", orderID, err)
	}
	if err := json.Unmarshal(vendorIDs, &order.VendorIDs); err != nil {
		return nil, fmt.Errorf("get order %q: parse vendor ids: %w", orderID, err)
	}
	if err := json.Unmarshal(portions, &order.Portions); err != nil {
		return nil, fmt.Errorf("get order %q: parse portions: %w", orderID, err)
	}

	return &order, nil
}

// Persist portion-status changes made by the vendor workflow.
func (r *SqliteOrderRepository) UpdateOrder(ctx context.Context, order *domain.FinalOrder) error {
	if r.DB == nil {
		return errors.New("sqlite order repository: DB is nil")
	}

	portions, _, err := marshalOrderDocs(order)
	if err != nil {
		return fmt.Errorf("update order %q: %w", order.OrderID, err)
	}

	res, err := r.DB.ExecContext(ctx, `
	UPDATE orders SET status = ?, portions = ? WHERE order_id = ?;
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

func marshalOrderDocs(order *domain.FinalOrder) (portions, vendorIDs []byte, err error) {
	portions, err = json.Marshal(order.Portions)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal portions: %w", err)
	}
	vendorIDs, err = json.Marshal(order.VendorIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal vendor ids: %w", err)
	}
	return portions, vendorIDs, nil
}
