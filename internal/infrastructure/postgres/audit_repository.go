package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

var (
	_ repository.ProductUpdateRepository = (*ProductUpdateRepo)(nil)
	_ repository.SupplyRequestRepository = (*SupplyRequestRepo)(nil)
)

// ProductUpdateRepo bitácora de modificaciones de productos.
type ProductUpdateRepo struct {
	q Querier
}

// NewProductUpdateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductUpdateRepository(q Querier) *ProductUpdateRepo {
	return &ProductUpdateRepo{q: q}
}

func (r *ProductUpdateRepo) Create(ctx context.Context, update *entity.ProductUpdate) error {
	query := `
		INSERT INTO product_updates (store_id, manager_id, product_name, updated_on)
		VALUES ($1, $2, $3, NOW())
		RETURNING update_number, updated_on`
	err := r.q.QueryRow(ctx, query, update.StoreID, update.ManagerID, update.ProductName).
		Scan(&update.UpdateNumber, &update.UpdatedOn)
	return storageErr("insert product update", err)
}

func (r *ProductUpdateRepo) ListRecentByManager(ctx context.Context, managerID int64, limit int) ([]*entity.ProductUpdate, error) {
	query := `
		SELECT pu.update_number, pu.store_id, pu.manager_id, u.name, pu.product_name, pu.updated_on
		FROM product_updates pu
		INNER JOIN users u ON pu.manager_id = u.user_id
		WHERE pu.manager_id = $1
		ORDER BY pu.updated_on DESC, pu.update_number DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, managerID, limit)
	if err != nil {
		return nil, storageErr("list product updates", err)
	}
	updates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.ProductUpdate, error) {
		var u entity.ProductUpdate
		err := row.Scan(&u.UpdateNumber, &u.StoreID, &u.ManagerID, &u.ManagerName, &u.ProductName, &u.UpdatedOn)
		return &u, err
	})
	if err != nil {
		return nil, storageErr("list product updates", err)
	}
	return updates, nil
}

// SupplyRequestRepo solicitudes de reabastecimiento.
type SupplyRequestRepo struct {
	q Querier
}

// NewSupplyRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRequestRepository(q Querier) *SupplyRequestRepo {
	return &SupplyRequestRepo{q: q}
}

func (r *SupplyRequestRepo) Create(ctx context.Context, req *entity.SupplyRequest) error {
	query := `
		INSERT INTO product_supply_requests (manager_id, warehouse_id, store_id, product_name, units_requested)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING request_number`
	err := r.q.QueryRow(ctx, query,
		req.ManagerID, req.WarehouseID, req.StoreID, req.ProductName, req.UnitsRequested,
	).Scan(&req.RequestNumber)
	return storageErr("insert supply request", err)
}

func (r *SupplyRequestRepo) ListByManager(ctx context.Context, managerID int64) ([]*entity.SupplyRequest, error) {
	query := `
		SELECT request_number, manager_id, warehouse_id, store_id, product_name, units_requested
		FROM product_supply_requests
		WHERE manager_id = $1
		ORDER BY request_number`
	rows, err := r.q.Query(ctx, query, managerID)
	if err != nil {
		return nil, storageErr("list supply requests", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.SupplyRequest, error) {
		var s entity.SupplyRequest
		err := row.Scan(&s.RequestNumber, &s.ManagerID, &s.WarehouseID, &s.StoreID, &s.ProductName, &s.UnitsRequested)
		return &s, err
	})
	if err != nil {
		return nil, storageErr("list supply requests", err)
	}
	return list, nil
}
