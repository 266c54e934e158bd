package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/ports"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// Actor quién ejecuta la operación (tomado de la sesión).
type Actor struct {
	ID   int64
	Role entity.Role
}

// LedgerUseCase consultas y modificaciones de productos por tienda.
// Las modificaciones bloquean la fila del producto (SELECT FOR UPDATE) y hacen Commit o Rollback.
type LedgerUseCase struct {
	txRunner    ports.TxRunner
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	updateRepo  repository.ProductUpdateRepository
	recentLimit int
	log         *logger.Logger
}

// NewLedgerUseCase construye el caso de uso. recentLimit <= 0 usa dto.DefaultRecentLimit.
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	updateRepo repository.ProductUpdateRepository,
	recentLimit int,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		updateRepo:  updateRepo,
		recentLimit: dto.NormalizeLimit(recentLimit, dto.DefaultRecentLimit),
		log:         log.Named("inventory"),
	}
}

// ProductExists indica si la tienda tiene un producto con ese nombre.
func (uc *LedgerUseCase) ProductExists(ctx context.Context, storeID int64, name string) (bool, error) {
	p, err := uc.productRepo.Get(ctx, storeID, name)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// CheckStock devuelve las unidades en stock del producto.
func (uc *LedgerUseCase) CheckStock(ctx context.Context, storeID int64, name string) (int, error) {
	p, err := uc.productRepo.Get(ctx, storeID, name)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, domain.ErrProductNotFound
	}
	return p.UnitsInStock, nil
}

// UpdateProductInput cambios ya validados. Un campo nil no se modifica.
type UpdateProductInput struct {
	StoreID  int64
	Name     string
	NewUnits *int
	NewPrice *decimal.Decimal
}

// UpdateProduct aplica los cambios pedidos. Un gerente solo puede modificar productos de sus
// tiendas y cada modificación suya deja un registro en la bitácora; un admin no tiene
// restricción de tienda y no deja registro.
func (uc *LedgerUseCase) UpdateProduct(ctx context.Context, actor Actor, in UpdateProductInput) (*dto.ProductResponse, error) {
	if actor.Role != entity.RoleManager && actor.Role != entity.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, domain.ErrEmptyInput
	}
	if in.NewUnits != nil && *in.NewUnits < 0 {
		return nil, domain.ErrInvalidFormat
	}
	if in.NewPrice != nil && in.NewPrice.IsNegative() {
		return nil, domain.ErrInvalidFormat
	}

	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		store, err := repos.Stores.GetByID(ctx, in.StoreID)
		if err != nil {
			return err
		}
		if store == nil {
			return domain.ErrStoreNotFound
		}
		if actor.Role == entity.RoleManager && !store.ManagedBy(actor.ID) {
			return domain.ErrNotStoreOwner
		}

		product, err := repos.Products.GetForUpdate(ctx, in.StoreID, in.Name)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if in.NewUnits == nil && in.NewPrice == nil {
			return domain.ErrNoChangeRequested
		}

		if in.NewUnits != nil {
			product.UnitsInStock = *in.NewUnits
		}
		if in.NewPrice != nil {
			product.PricePerUnit = *in.NewPrice
		}
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}
		if actor.Role == entity.RoleManager {
			if err := repos.Updates.Create(ctx, &entity.ProductUpdate{
				StoreID:     in.StoreID,
				ManagerID:   actor.ID,
				ProductName: in.Name,
			}); err != nil {
				return err
			}
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("actor_id", actor.ID).
		Str("role", actor.Role.String()).
		Int64("store_id", in.StoreID).
		Str("product", in.Name).
		Msg("producto actualizado")
	return toProductResponse(out), nil
}

// ListProducts lista los productos de una tienda. Un gerente solo puede ver sus tiendas.
func (uc *LedgerUseCase) ListProducts(ctx context.Context, actor Actor, storeID int64) ([]dto.ProductResponse, error) {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}
	if actor.Role == entity.RoleManager && !store.ManagedBy(actor.ID) {
		return nil, domain.ErrNotStoreOwner
	}
	products, err := uc.productRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListAllProducts lista todos los productos por tienda y nombre (vista del admin).
func (uc *LedgerUseCase) ListAllProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListRecentUpdates devuelve las últimas modificaciones del gerente, la más reciente primero.
func (uc *LedgerUseCase) ListRecentUpdates(ctx context.Context, managerID int64) ([]dto.ProductUpdateResponse, error) {
	updates, err := uc.updateRepo.ListRecentByManager(ctx, managerID, uc.recentLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductUpdateResponse, 0, len(updates))
	for _, u := range updates {
		out = append(out, dto.ProductUpdateResponse{
			UpdateNumber: u.UpdateNumber,
			StoreID:      u.StoreID,
			ManagerName:  u.ManagerName,
			ProductName:  u.ProductName,
			UpdatedOn:    u.UpdatedOn,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		StoreID:      p.StoreID,
		Name:         p.Name,
		UnitsInStock: p.UnitsInStock,
		PricePerUnit: p.PricePerUnit,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out
}
