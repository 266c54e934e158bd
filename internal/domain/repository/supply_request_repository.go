package repository

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

// SupplyRequestRepository persiste solicitudes de reabastecimiento.
type SupplyRequestRepository interface {
	Create(ctx context.Context, req *entity.SupplyRequest) error
	ListByManager(ctx context.Context, managerID int64) ([]*entity.SupplyRequest, error)
}
