package cli

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/inventory"
	"github.com/jhoicas/Tiendas-ops/internal/domain/validation"
)

func (c *Console) findNearbyStores(ctx context.Context, sess *auth.Session) error {
	stores, err := c.deps.Stores.FindNearby(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		c.printf("No hay tiendas cerca de su ubicación.")
		return nil
	}
	rows := make([]string, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, fmt.Sprintf("%d\t%.2f\t%.2f\t%.2f", s.ID, s.Latitude, s.Longitude, s.Distance))
	}
	c.table("Tienda\tLatitud\tLongitud\tDistancia", rows)
	return nil
}

func (c *Console) listStoreProducts(ctx context.Context, sess *auth.Session) error {
	raw, err := c.ask("ID de tienda")
	if err != nil {
		return err
	}
	storeID, err := validation.ID(raw)
	if err != nil {
		return err
	}
	products, err := c.deps.Ledger.ListProducts(ctx, inventory.Actor{ID: sess.UserID, Role: sess.Role}, storeID)
	if err != nil {
		return err
	}
	c.productTable(products, false)
	return nil
}

func (c *Console) placeOrder(ctx context.Context, sess *auth.Session) error {
	var in dto.PlaceOrderRequest
	var err error
	if in.StoreID, err = c.ask("ID de tienda"); err != nil {
		return err
	}
	if in.ProductName, err = c.ask("Producto"); err != nil {
		return err
	}
	if in.Units, err = c.ask("Unidades"); err != nil {
		return err
	}
	number, err := c.deps.Orders.PlaceOrderFromRequest(ctx, sess.UserID, in)
	if err != nil {
		return err
	}
	c.printf("Pedido #%d registrado.", number)
	return nil
}

func (c *Console) viewOwnRecentOrders(ctx context.Context, sess *auth.Session) error {
	orders, err := c.deps.Orders.ListRecentOrders(ctx, sess.UserID)
	if err != nil {
		return err
	}
	c.orderTable(orders, false)
	return nil
}

// ── tablas compartidas ─────────────────────────────────────────────────────

func (c *Console) productTable(products []dto.ProductResponse, withStore bool) {
	if len(products) == 0 {
		c.printf("No hay productos.")
		return
	}
	rows := make([]string, 0, len(products))
	for _, p := range products {
		line := fmt.Sprintf("%s\t%d\t%s", p.Name, p.UnitsInStock, p.PricePerUnit.StringFixed(2))
		if withStore {
			line = fmt.Sprintf("%d\t%s", p.StoreID, line)
		}
		rows = append(rows, line)
	}
	header := "Producto\tUnidades\tPrecio"
	if withStore {
		header = "Tienda\t" + header
	}
	c.table(header, rows)
}

func (c *Console) orderTable(orders []dto.OrderResponse, withCustomer bool) {
	if len(orders) == 0 {
		c.printf("No hay pedidos.")
		return
	}
	rows := make([]string, 0, len(orders))
	for _, o := range orders {
		line := fmt.Sprintf("%d\t%d\t%s\t%d\t%s",
			o.OrderNumber, o.StoreID, o.ProductName, o.UnitsOrdered, o.OrderTime.Format("2006-01-02 15:04"))
		if withCustomer {
			line += "\t" + o.CustomerName
		}
		rows = append(rows, line)
	}
	header := "Pedido\tTienda\tProducto\tUnidades\tFecha"
	if withCustomer {
		header += "\tCliente"
	}
	c.table(header, rows)
}
