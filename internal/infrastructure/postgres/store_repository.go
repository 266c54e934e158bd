package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo lectura de tiendas sobre PostgreSQL (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de tiendas. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// manager_id NULL se lee como 0 (tienda sin gerente).
const storeColumns = `store_id, latitude, longitude, COALESCE(manager_id, 0)`

func (r *StoreRepo) GetByID(ctx context.Context, id int64) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM store WHERE store_id = $1`, id).
		Scan(&s.ID, &s.Latitude, &s.Longitude, &s.ManagerID)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storageErr("get store", err)
	}
	return &s, nil
}

func (r *StoreRepo) List(ctx context.Context) ([]entity.Store, error) {
	return r.list(ctx, "list stores", `SELECT `+storeColumns+` FROM store ORDER BY store_id`)
}

func (r *StoreRepo) ListByManager(ctx context.Context, managerID int64) ([]entity.Store, error) {
	return r.list(ctx, "list stores by manager",
		`SELECT `+storeColumns+` FROM store WHERE manager_id = $1 ORDER BY store_id`, managerID)
}

func (r *StoreRepo) list(ctx context.Context, op, query string, args ...any) ([]entity.Store, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	stores, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Store, error) {
		var s entity.Store
		err := row.Scan(&s.ID, &s.Latitude, &s.Longitude, &s.ManagerID)
		return s, err
	})
	if err != nil {
		return nil, storageErr(op, err)
	}
	return stores, nil
}
