package repository

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos (solo inserción y lectura).
type OrderRepository interface {
	// Create inserta el pedido y asigna OrderNumber.
	Create(ctx context.Context, order *entity.Order) error
	ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]*entity.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.OrderWithCustomer, error)
}
