package repository

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

// StoreRepository define el puerto de lectura para tiendas.
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Store, error)
	List(ctx context.Context) ([]entity.Store, error)
	ListByManager(ctx context.Context, managerID int64) ([]entity.Store, error)
}
