package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `store_id, product_name, units_in_stock, price_per_unit`

// Get obtiene un producto por tienda y nombre.
func (r *ProductRepo) Get(ctx context.Context, storeID int64, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE store_id = $1 AND product_name = $2`
	return r.get(ctx, "get product", query, storeID, name)
}

// GetForUpdate obtiene el producto con SELECT FOR UPDATE (solo tiene sentido dentro de una tx).
func (r *ProductRepo) GetForUpdate(ctx context.Context, storeID int64, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE store_id = $1 AND product_name = $2 FOR UPDATE`
	return r.get(ctx, "get product for update", query, storeID, name)
}

func (r *ProductRepo) get(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(&p.StoreID, &p.Name, &p.UnitsInStock, &p.PricePerUnit)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return &p, nil
}

// Update reemplaza stock y precio del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE product SET units_in_stock = $1, price_per_unit = $2
		WHERE store_id = $3 AND product_name = $4`
	_, err := r.q.Exec(ctx, query, product.UnitsInStock, product.PricePerUnit, product.StoreID, product.Name)
	return storageErr("update product", err)
}

// AddUnits suma delta al stock de forma atómica y devuelve el valor resultante.
// El CHECK units_in_stock >= 0 se traduce a ErrInsufficientStock.
func (r *ProductRepo) AddUnits(ctx context.Context, storeID int64, name string, delta int) (int, error) {
	query := `
		UPDATE product SET units_in_stock = units_in_stock + $1
		WHERE store_id = $2 AND product_name = $3
		RETURNING units_in_stock`
	var units int
	err := r.q.QueryRow(ctx, query, delta, storeID, name).Scan(&units)
	if err != nil {
		if noRows(err) {
			return 0, domain.ErrProductNotFound
		}
		return 0, storageErr("add product units", err)
	}
	return units, nil
}

// ListByStore lista los productos de una tienda por nombre.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID int64) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE store_id = $1 ORDER BY product_name`
	return r.list(ctx, "list products by store", query, storeID)
}

// ListAll lista todos los productos por tienda y nombre.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product ORDER BY store_id ASC, product_name ASC`
	return r.list(ctx, "list products", query)
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Product, error) {
		var p entity.Product
		err := row.Scan(&p.StoreID, &p.Name, &p.UnitsInStock, &p.PricePerUnit)
		return &p, err
	})
	if err != nil {
		return nil, storageErr(op, err)
	}
	return products, nil
}
