package ports

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Stores   repository.StoreRepository
	Products repository.ProductRepository
	Orders   repository.OrderRepository
	Updates  repository.ProductUpdateRepository
	Supply   repository.SupplyRequestRepository
}

// TxRunner define el puerto de salida para ejecutar secuencias verificar-y-actuar de forma atómica.
// Siguiendo el principio de inversión de dependencias (DIP), la aplicación solo conoce este
// contrato: si fn devuelve error, ninguna escritura hecha con los repos de TxRepos persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
