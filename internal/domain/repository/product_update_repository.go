package repository

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

// ProductUpdateRepository bitácora de modificaciones de productos.
type ProductUpdateRepository interface {
	Create(ctx context.Context, update *entity.ProductUpdate) error
	ListRecentByManager(ctx context.Context, managerID int64, limit int) ([]*entity.ProductUpdate, error)
}
