package repository

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (usable con pool o tx).
type ProductRepository interface {
	Get(ctx context.Context, storeID int64, name string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, storeID int64, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AddUnits suma delta (positivo o negativo) a units_in_stock y devuelve el stock resultante.
	AddUnits(ctx context.Context, storeID int64, name string, delta int) (int, error)
	ListByStore(ctx context.Context, storeID int64) ([]*entity.Product, error)
	// ListAll devuelve todos los productos ordenados por tienda y nombre.
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
