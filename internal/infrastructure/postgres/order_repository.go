package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos sobre PostgreSQL. Solo inserta y lee.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta el pedido con la hora del servidor y completa OrderNumber y OrderTime.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (customer_id, store_id, product_name, units_ordered, order_time)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING order_number, order_time`
	err := r.q.QueryRow(ctx, query,
		order.CustomerID, order.StoreID, order.ProductName, order.UnitsOrdered,
	).Scan(&order.OrderNumber, &order.OrderTime)
	return storageErr("insert order", err)
}

func (r *OrderRepo) ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]*entity.Order, error) {
	query := `
		SELECT order_number, customer_id, store_id, product_name, units_ordered, order_time
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_time DESC, order_number DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, customerID, limit)
	if err != nil {
		return nil, storageErr("list recent orders", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Order, error) {
		var o entity.Order
		err := row.Scan(&o.OrderNumber, &o.CustomerID, &o.StoreID, &o.ProductName, &o.UnitsOrdered, &o.OrderTime)
		return &o, err
	})
	if err != nil {
		return nil, storageErr("list recent orders", err)
	}
	return orders, nil
}

func (r *OrderRepo) ListRecent(ctx context.Context, limit int) ([]*entity.OrderWithCustomer, error) {
	query := `
		SELECT o.order_number, o.customer_id, u.name, o.store_id, o.product_name, o.units_ordered, o.order_time
		FROM orders o
		INNER JOIN users u ON o.customer_id = u.user_id
		ORDER BY o.order_time DESC, o.order_number DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, storageErr("list recent orders (all)", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.OrderWithCustomer, error) {
		var o entity.OrderWithCustomer
		err := row.Scan(&o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.StoreID, &o.ProductName, &o.UnitsOrdered, &o.OrderTime)
		return &o, err
	})
	if err != nil {
		return nil, storageErr("list recent orders (all)", err)
	}
	return orders, nil
}
