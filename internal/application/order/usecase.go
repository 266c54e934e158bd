// Package order registra pedidos de clientes y los lista.
package order

import (
	"context"
	"strings"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/ports"
	"github.com/jhoicas/Tiendas-ops/internal/domain"
	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/repository"
	"github.com/jhoicas/Tiendas-ops/internal/domain/validation"
	"github.com/jhoicas/Tiendas-ops/pkg/logger"
)

// Config política de pedidos.
type Config struct {
	// DecrementStock descuenta las unidades pedidas en la misma transacción del pedido.
	DecrementStock bool
	RecentLimit    int
}

// OrderUseCase registra pedidos verificando stock con la fila del producto bloqueada.
type OrderUseCase struct {
	txRunner  ports.TxRunner
	orderRepo repository.OrderRepository
	cfg       Config
	log       *logger.Logger
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(txRunner ports.TxRunner, orderRepo repository.OrderRepository, cfg Config, log *logger.Logger) *OrderUseCase {
	cfg.RecentLimit = dto.NormalizeLimit(cfg.RecentLimit, dto.DefaultRecentLimit)
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, cfg: cfg, log: log.Named("orders")}
}

// PlaceOrderInput pedido ya validado.
type PlaceOrderInput struct {
	StoreID     int64
	ProductName string
	Units       int
}

// PlaceOrder registra el pedido si hay stock suficiente y devuelve su número.
// La lectura del stock, la comparación y la inserción ocurren en una sola transacción.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (int64, error) {
	if in.ProductName == "" {
		return 0, domain.ErrEmptyInput
	}
	if in.Units <= 0 {
		return 0, domain.ErrInvalidFormat
	}

	o := &entity.Order{
		CustomerID:   customerID,
		StoreID:      in.StoreID,
		ProductName:  in.ProductName,
		UnitsOrdered: in.Units,
	}
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		store, err := repos.Stores.GetByID(ctx, in.StoreID)
		if err != nil {
			return err
		}
		if store == nil {
			return domain.ErrStoreNotFound
		}
		product, err := repos.Products.GetForUpdate(ctx, in.StoreID, in.ProductName)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if in.Units > product.UnitsInStock {
			return domain.ErrInsufficientStock
		}
		if err := repos.Orders.Create(ctx, o); err != nil {
			return err
		}
		if uc.cfg.DecrementStock {
			if _, err := repos.Products.AddUnits(ctx, in.StoreID, in.ProductName, -in.Units); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Debug().Err(err).Int64("customer_id", customerID).Int64("store_id", in.StoreID).Msg("pedido rechazado")
		return 0, err
	}

	uc.log.Info().
		Int64("order_number", o.OrderNumber).
		Int64("customer_id", customerID).
		Int64("store_id", in.StoreID).
		Str("product", in.ProductName).
		Int("units", in.Units).
		Msg("pedido registrado")
	return o.OrderNumber, nil
}

// PlaceOrderFromRequest valida el texto ingresado por el operador y delega en PlaceOrder.
func (uc *OrderUseCase) PlaceOrderFromRequest(ctx context.Context, customerID int64, in dto.PlaceOrderRequest) (int64, error) {
	storeID, err := validation.ID(in.StoreID)
	if err != nil {
		return 0, err
	}
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return 0, domain.ErrEmptyInput
	}
	units, err := validation.PositiveInt(in.Units)
	if err != nil {
		return 0, err
	}
	return uc.PlaceOrder(ctx, customerID, PlaceOrderInput{StoreID: storeID, ProductName: name, Units: units})
}

// ListRecentOrders últimos pedidos del cliente, el más reciente primero.
func (uc *OrderUseCase) ListRecentOrders(ctx context.Context, customerID int64) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListRecentByCustomer(ctx, customerID, uc.cfg.RecentLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, ""))
	}
	return out, nil
}

// ListRecentOrdersAllCustomers últimos pedidos de todos los clientes con su nombre (vista del gerente).
func (uc *OrderUseCase) ListRecentOrdersAllCustomers(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListRecent(ctx, uc.cfg.RecentLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(&o.Order, o.CustomerName))
	}
	return out, nil
}

func toOrderResponse(o *entity.Order, customerName string) dto.OrderResponse {
	return dto.OrderResponse{
		OrderNumber:  o.OrderNumber,
		CustomerName: customerName,
		StoreID:      o.StoreID,
		ProductName:  o.ProductName,
		UnitsOrdered: o.UnitsOrdered,
		OrderTime:    o.OrderTime,
	}
}
