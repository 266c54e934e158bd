package cli

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tiendas-ops/internal/application/auth"
	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
	"github.com/jhoicas/Tiendas-ops/internal/application/inventory"
)

func (c *Console) viewRecentOrdersAll(ctx context.Context, _ *auth.Session) error {
	orders, err := c.deps.Orders.ListRecentOrdersAllCustomers(ctx)
	if err != nil {
		return err
	}
	c.orderTable(orders, true)
	return nil
}

// updateProduct sirve tanto al gerente (tiendas propias) como al admin (cualquier tienda).
func (c *Console) updateProduct(ctx context.Context, sess *auth.Session) error {
	var in dto.UpdateProductRequest
	var err error
	if in.StoreID, err = c.ask("ID de tienda"); err != nil {
		return err
	}
	if in.ProductName, err = c.ask("Producto"); err != nil {
		return err
	}
	if in.NewUnits, err = c.ask("Nuevas unidades (vacío = sin cambio)"); err != nil {
		return err
	}
	if in.NewPrice, err = c.ask("Nuevo precio (vacío = sin cambio)"); err != nil {
		return err
	}
	p, err := c.deps.Ledger.UpdateProductFromRequest(ctx, inventory.Actor{ID: sess.UserID, Role: sess.Role}, in)
	if err != nil {
		return err
	}
	c.printf("Producto actualizado: %s en tienda %d, %d unidades a %s.",
		p.Name, p.StoreID, p.UnitsInStock, p.PricePerUnit.StringFixed(2))
	return nil
}

func (c *Console) viewOwnRecentUpdates(ctx context.Context, sess *auth.Session) error {
	updates, err := c.deps.Ledger.ListRecentUpdates(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		c.printf("No hay actualizaciones.")
		return nil
	}
	rows := make([]string, 0, len(updates))
	for _, u := range updates {
		rows = append(rows, fmt.Sprintf("%d\t%d\t%s\t%s\t%s",
			u.UpdateNumber, u.StoreID, u.ProductName, u.ManagerName, u.UpdatedOn.Format("2006-01-02 15:04")))
	}
	c.table("N°\tTienda\tProducto\tGerente\tFecha", rows)
	return nil
}

func (c *Console) viewTopProducts(ctx context.Context, sess *auth.Session) error {
	top, err := c.deps.Analytics.TopProducts(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		c.printf("No hay pedidos en sus tiendas.")
		return nil
	}
	rows := make([]string, 0, len(top))
	for _, p := range top {
		rows = append(rows, fmt.Sprintf("%d\t%s\t%d", p.Rank, p.ProductName, p.OrderCount))
	}
	c.table("#\tProducto\tPedidos", rows)
	return nil
}

func (c *Console) viewTopCustomers(ctx context.Context, sess *auth.Session) error {
	top, err := c.deps.Analytics.TopCustomers(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		c.printf("No hay pedidos en sus tiendas.")
		return nil
	}
	rows := make([]string, 0, len(top))
	for _, cu := range top {
		rows = append(rows, fmt.Sprintf("%d\t%d\t%s\t%d", cu.Rank, cu.CustomerID, cu.CustomerName, cu.OrderCount))
	}
	c.table("#\tID\tCliente\tPedidos", rows)
	return nil
}

// placeSupplyRequest muestra las tiendas del gerente antes de pedir los datos.
func (c *Console) placeSupplyRequest(ctx context.Context, sess *auth.Session) error {
	stores, err := c.deps.Supply.ManagedStores(ctx, sess.UserID)
	if err != nil {
		return err
	}
	rows := make([]string, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, fmt.Sprintf("%d\t%.2f\t%.2f", s.ID, s.Latitude, s.Longitude))
	}
	c.table("Tienda\tLatitud\tLongitud", rows)

	var in dto.SupplyRequestInput
	if in.StoreID, err = c.ask("ID de tienda"); err != nil {
		return err
	}
	if in.ProductName, err = c.ask("Producto"); err != nil {
		return err
	}
	if in.Units, err = c.ask("Unidades"); err != nil {
		return err
	}
	if in.WarehouseID, err = c.ask("ID de bodega"); err != nil {
		return err
	}
	res, err := c.deps.Supply.RequestSupplyFromRequest(ctx, sess.UserID, in)
	if err != nil {
		return err
	}
	c.printf("Solicitud #%d aplicada: %s en tienda %d, stock actual %d.",
		res.RequestNumber, res.ProductName, res.StoreID, res.NewStock)
	return nil
}

func (c *Console) viewOwnSupplyRequests(ctx context.Context, sess *auth.Session) error {
	reqs, err := c.deps.Supply.ListRequests(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		c.printf("No hay solicitudes.")
		return nil
	}
	rows := make([]string, 0, len(reqs))
	for _, r := range reqs {
		rows = append(rows, fmt.Sprintf("%d\t%d\t%d\t%s\t%d", r.RequestNumber, r.StoreID, r.WarehouseID, r.ProductName, r.Units))
	}
	c.table("N°\tTienda\tBodega\tProducto\tUnidades", rows)
	return nil
}

func (c *Console) exportAnalyticsReport(ctx context.Context, sess *auth.Session) error {
	path, err := c.deps.Analytics.ExportReport(ctx, sess.UserID, c.deps.ReportDir)
	if err != nil {
		return err
	}
	c.printf("Reporte escrito en %s.", path)
	return nil
}
