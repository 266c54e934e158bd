package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/validation"
)

// UpdateProductFromRequest valida el texto ingresado por el operador y delega en UpdateProduct.
// Unidades o precio vacíos significan "sin cambio".
func (uc *LedgerUseCase) UpdateProductFromRequest(ctx context.Context, actor Actor, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	storeID, err := validation.ID(in.StoreID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, domain.ErrEmptyInput
	}
	input := UpdateProductInput{StoreID: storeID, Name: name}
	if strings.TrimSpace(in.NewUnits) != "" {
		units, err := validation.NonNegativeInt(in.NewUnits)
		if err != nil {
			return nil, err
		}
		input.NewUnits = &units
	}
	if strings.TrimSpace(in.NewPrice) != "" {
		price, err := validation.Price(in.NewPrice)
		if err != nil {
			return nil, err
		}
		input.NewPrice = &price
	}
	return uc.UpdateProduct(ctx, actor, input)
}

// RequestSupplyFromRequest valida el texto ingresado y delega en RequestSupply.
func (uc *SupplyUseCase) RequestSupplyFromRequest(ctx context.Context, managerID int64, in dto.SupplyRequestInput) (*dto.SupplyRequestResponse, error) {
	storeID, err := validation.ID(in.StoreID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, domain.ErrEmptyInput
	}
	units, err := validation.PositiveInt(in.Units)
	if err != nil {
		return nil, err
	}
	warehouseID, err := validation.ID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	return uc.RequestSupply(ctx, managerID, SupplyInput{
		StoreID:     storeID,
		WarehouseID: warehouseID,
		ProductName: name,
		Units:       units,
	})
}
