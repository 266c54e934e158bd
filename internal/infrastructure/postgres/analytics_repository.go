package postgres

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los rankings del gerente.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// TopProducts cuenta pedidos por producto en las tiendas del gerente.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, managerID int64, limit int) ([]repository.ProductRanking, error) {
	const query = `
	SELECT
	    o.product_name,
	    COUNT(*)        AS order_count
	FROM orders  o
	JOIN store   s ON s.store_id = o.store_id
	JOIN product p ON p.store_id = o.store_id AND p.product_name = o.product_name
	WHERE s.manager_id = $1
	GROUP BY o.product_name
	ORDER BY order_count DESC, o.product_name ASC
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, managerID, limit)
	if err != nil {
		return nil, storageErr("analytics.TopProducts", err)
	}
	defer rows.Close()

	var results []repository.ProductRanking
	for rows.Next() {
		var row repository.ProductRanking
		if err := rows.Scan(&row.ProductName, &row.OrderCount); err != nil {
			return nil, storageErr("analytics.TopProducts scan", err)
		}
		results = append(results, row)
	}
	return results, storageErr("analytics.TopProducts rows", rows.Err())
}

// TopCustomers cuenta pedidos por cliente en las tiendas del gerente.
func (r *AnalyticsRepo) TopCustomers(ctx context.Context, managerID int64, limit int) ([]repository.CustomerRanking, error) {
	const query = `
	SELECT
	    u.user_id,
	    u.name,
	    COUNT(*)        AS order_count
	FROM orders o
	JOIN store  s ON s.store_id = o.store_id
	JOIN users  u ON u.user_id  = o.customer_id
	WHERE s.manager_id = $1
	GROUP BY u.user_id, u.name
	ORDER BY order_count DESC, u.user_id ASC
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, managerID, limit)
	if err != nil {
		return nil, storageErr("analytics.TopCustomers", err)
	}
	defer rows.Close()

	var results []repository.CustomerRanking
	for rows.Next() {
		var row repository.CustomerRanking
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.OrderCount); err != nil {
			return nil, storageErr("analytics.TopCustomers scan", err)
		}
		results = append(results, row)
	}
	return results, storageErr("analytics.TopCustomers rows", rows.Err())
}
