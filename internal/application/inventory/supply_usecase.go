package inventory

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/ports"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// SupplyUseCase solicitudes de reabastecimiento desde bodega hacia las tiendas del gerente.
type SupplyUseCase struct {
	txRunner   ports.TxRunner
	storeRepo  repository.StoreRepository
	supplyRepo repository.SupplyRequestRepository
	log        *logger.Logger
}

// NewSupplyUseCase construye el caso de uso de reabastecimiento.
func NewSupplyUseCase(txRunner ports.TxRunner, storeRepo repository.StoreRepository, supplyRepo repository.SupplyRequestRepository, log *logger.Logger) *SupplyUseCase {
	return &SupplyUseCase{txRunner: txRunner, storeRepo: storeRepo, supplyRepo: supplyRepo, log: log.Named("supply")}
}

// ListRequests historial de solicitudes del gerente, de la más antigua a la más reciente.
func (uc *SupplyUseCase) ListRequests(ctx context.Context, managerID int64) ([]dto.SupplyRequestRecord, error) {
	reqs, err := uc.supplyRepo.ListByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplyRequestRecord, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.SupplyRequestRecord{
			RequestNumber: r.RequestNumber,
			StoreID:       r.StoreID,
			WarehouseID:   r.WarehouseID,
			ProductName:   r.ProductName,
			Units:         r.UnitsRequested,
		})
	}
	return out, nil
}

// ManagedStores lista las tiendas del gerente; ErrNoManagedStores si no tiene ninguna.
func (uc *SupplyUseCase) ManagedStores(ctx context.Context, managerID int64) ([]entity.Store, error) {
	stores, err := uc.storeRepo.ListByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, domain.ErrNoManagedStores
	}
	return stores, nil
}

// SupplyInput solicitud ya validada.
type SupplyInput struct {
	StoreID     int64
	WarehouseID int64
	ProductName string
	Units       int
}

// RequestSupply registra la solicitud y suma las unidades al stock en una sola transacción:
// si cualquiera de los dos pasos falla, no persiste ninguno.
func (uc *SupplyUseCase) RequestSupply(ctx context.Context, managerID int64, in SupplyInput) (*dto.SupplyRequestResponse, error) {
	if in.ProductName == "" {
		return nil, domain.ErrEmptyInput
	}
	if in.Units <= 0 || in.StoreID <= 0 || in.WarehouseID <= 0 {
		return nil, domain.ErrInvalidFormat
	}

	out := &dto.SupplyRequestResponse{
		StoreID:     in.StoreID,
		WarehouseID: in.WarehouseID,
		ProductName: in.ProductName,
		Units:       in.Units,
	}
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		store, err := repos.Stores.GetByID(ctx, in.StoreID)
		if err != nil {
			return err
		}
		if store == nil || !store.ManagedBy(managerID) {
			return domain.ErrNotStoreOwner
		}
		product, err := repos.Products.GetForUpdate(ctx, in.StoreID, in.ProductName)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		req := &entity.SupplyRequest{
			ManagerID:      managerID,
			WarehouseID:    in.WarehouseID,
			StoreID:        in.StoreID,
			ProductName:    in.ProductName,
			UnitsRequested: in.Units,
		}
		if err := repos.Supply.Create(ctx, req); err != nil {
			return err
		}
		stock, err := repos.Products.AddUnits(ctx, in.StoreID, in.ProductName, in.Units)
		if err != nil {
			return err
		}
		out.RequestNumber = req.RequestNumber
		out.NewStock = stock
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("manager_id", managerID).Int64("store_id", in.StoreID).Msg("solicitud de reabastecimiento rechazada")
		return nil, err
	}

	uc.log.Info().
		Int64("manager_id", managerID).
		Int64("request_number", out.RequestNumber).
		Int64("store_id", in.StoreID).
		Int64("warehouse_id", in.WarehouseID).
		Str("product", in.ProductName).
		Int("units", in.Units).
		Msg("reabastecimiento registrado")
	return out, nil
}
